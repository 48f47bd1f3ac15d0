package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage project members",
	Long:  `List, add, and remove project members, and change member roles.`,
}

var membersListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List project members",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		resp, err := c.MemberList(args[0])
		if err != nil {
			out.Error("Failed to list members: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(resp)
			return
		}

		out.Header(fmt.Sprintf("Members (%d)", resp.Count))
		for _, m := range resp.Members {
			out.Divider()
			out.KeyValue("User", m.UserID)
			out.KeyValue("Role", m.Role)
			out.KeyValue("Status", m.Status)
			out.KeyValue("Joined", m.JoinedAt.Format("2006-01-02"))
		}
	},
}

var membersAddRole string

var membersAddCmd = &cobra.Command{
	Use:   "add <project-id> <user-id>",
	Short: "Add a member by user id",
	Long: `Add a user to a project. The acting user must be an OWNER or ADMIN of
the project.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		m, err := c.MemberAdd(args[0], args[1], membersAddRole)
		if err != nil {
			out.Error("Failed to add member: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(m)
			return
		}

		out.Success("Member added")
		out.KeyValue("User", m.UserID)
		out.KeyValue("Role", m.Role)
	},
}

var membersAddByEmailRole string

var membersAddByEmailCmd = &cobra.Command{
	Use:   "add-by-email <project-id> <email>",
	Short: "Add a member by email",
	Long: `Add a user to a project by email. The email is resolved through the
user directory using the configured bearer token.

Examples:
  projectctl members add-by-email 7c2e... dev@example.com
  projectctl members add-by-email 7c2e... lead@example.com --role ADMIN`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		m, err := c.MemberAddByEmail(args[0], args[1], membersAddByEmailRole)
		if err != nil {
			out.Error("Failed to add member: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(m)
			return
		}

		out.Success("Member added")
		out.KeyValue("User", m.UserID)
		out.KeyValue("Role", m.Role)
	},
}

var membersSetRoleCmd = &cobra.Command{
	Use:   "set-role <project-id> <user-id> <role>",
	Short: "Change a member's role",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		m, err := c.MemberSetRole(args[0], args[1], args[2])
		if err != nil {
			out.Error("Failed to update role: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(m)
			return
		}

		out.Success("Role updated")
		out.KeyValue("User", m.UserID)
		out.KeyValue("Role", m.Role)
	},
}

var membersRemoveCmd = &cobra.Command{
	Use:   "remove <project-id> <user-id>",
	Short: "Remove a member",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		if err := c.MemberRemove(args[0], args[1]); err != nil {
			out.Error("Failed to remove member: %v", err)
			return
		}
		out.Success("Member removed")
	},
}

func init() {
	membersAddCmd.Flags().StringVar(&membersAddRole, "role", "MEMBER", "role to assign (OWNER, ADMIN, MEMBER)")
	membersAddByEmailCmd.Flags().StringVar(&membersAddByEmailRole, "role", "MEMBER", "role to assign (OWNER, ADMIN, MEMBER)")

	membersCmd.AddCommand(membersListCmd)
	membersCmd.AddCommand(membersAddCmd)
	membersCmd.AddCommand(membersAddByEmailCmd)
	membersCmd.AddCommand(membersSetRoleCmd)
	membersCmd.AddCommand(membersRemoveCmd)
	rootCmd.AddCommand(membersCmd)
}
