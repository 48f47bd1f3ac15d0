package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/projectd/pkg/client"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
	Long:  `Create, list, inspect, update, and delete projects.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		resp, err := c.ProjectList()
		if err != nil {
			out.Error("Failed to list projects: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(resp)
			return
		}

		out.Header(fmt.Sprintf("Projects (%d)", resp.Count))
		for _, p := range resp.Projects {
			out.Divider()
			out.KeyValue("ID", p.ID)
			out.KeyValue("Key", p.ProjectKey)
			out.KeyValue("Name", p.Name)
			if p.Type != "" {
				out.KeyValue("Type", p.Type)
			}
			out.KeyValue("Owner", p.OwnerID)
		}
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		p, err := c.ProjectGet(args[0])
		if err != nil {
			out.Error("Failed to get project: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(p)
			return
		}

		out.Header(p.Name)
		out.KeyValue("ID", p.ID)
		out.KeyValue("Key", p.ProjectKey)
		if p.Description != "" {
			out.KeyValue("Description", p.Description)
		}
		if p.Type != "" {
			out.KeyValue("Type", p.Type)
		}
		out.KeyValue("Owner", p.OwnerID)
		out.KeyValue("Created", p.CreatedAt.Format("2006-01-02 15:04:05"))
	},
}

var (
	projectsCreateName        string
	projectsCreateKey         string
	projectsCreateDescription string
	projectsCreateType        string
)

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Create a project. The acting user becomes its owner, and the project
starts with the default To Do / In Progress / Done workflow.

Examples:
  projectctl projects create --name "Apollo" --key APLO
  projectctl projects create --name "Apollo" --key APLO --type scrum`,
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}
		if projectsCreateName == "" {
			out.Error("--name is required")
			return
		}
		if projectsCreateKey == "" {
			out.Error("--key is required")
			return
		}

		c := getClient()
		p, err := c.ProjectCreate(client.CreateProjectRequest{
			Name:        projectsCreateName,
			ProjectKey:  projectsCreateKey,
			Description: projectsCreateDescription,
			Type:        projectsCreateType,
		})
		if err != nil {
			out.Error("Failed to create project: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(p)
			return
		}

		out.Success("Project created")
		out.KeyValue("ID", p.ID)
		out.KeyValue("Key", p.ProjectKey)
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Long:  `Delete a project together with its workflow statuses and memberships.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		if err := c.ProjectDelete(args[0]); err != nil {
			out.Error("Failed to delete project: %v", err)
			return
		}
		out.Success("Project deleted")
	},
}

var projectsStatusesCmd = &cobra.Command{
	Use:   "statuses <id>",
	Short: "List a project's workflow statuses",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireUser() {
			return
		}

		c := getClient()
		resp, err := c.ProjectStatuses(args[0])
		if err != nil {
			out.Error("Failed to list statuses: %v", err)
			return
		}

		if jsonOutput {
			out.JSON(resp)
			return
		}

		out.Header(fmt.Sprintf("Workflow statuses (%d)", resp.Count))
		for _, s := range resp.Statuses {
			marker := " "
			if s.IsFinal {
				marker = "*"
			}
			out.Info("%d. [%s] %s %s", s.OrderIndex, s.Code, s.StatusName, marker)
		}
	},
}

func init() {
	projectsCreateCmd.Flags().StringVar(&projectsCreateName, "name", "", "project name")
	projectsCreateCmd.Flags().StringVar(&projectsCreateKey, "key", "", "project key (normalized to upper case)")
	projectsCreateCmd.Flags().StringVar(&projectsCreateDescription, "description", "", "project description")
	projectsCreateCmd.Flags().StringVar(&projectsCreateType, "type", "", "project type")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsStatusesCmd)
	rootCmd.AddCommand(projectsCmd)
}
