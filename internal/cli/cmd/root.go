package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/projectd/internal/cli/config"
	"github.com/taskflowhq/projectd/internal/cli/output"
	"github.com/taskflowhq/projectd/pkg/client"
)

var (
	cfgFile    string
	serverURL  string
	userID     string
	jsonOutput bool
	cfg        *config.Config
	out        *output.Output
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "projectctl",
	Short: "CLI for the projects service",
	Long:  `projectctl is a command-line tool for managing projects, workflow statuses, and project members.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		out = output.New(jsonOutput)

		// Load config (ignore errors for commands that don't need it)
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			cfg = &config.Config{}
		}

		// Flag > config > default
		if serverURL == "" && cfg.Server != "" {
			serverURL = cfg.Server
		}
		if serverURL == "" {
			serverURL = client.DefaultServer
		}
		if userID == "" {
			userID = cfg.UserID
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.projectctl/config.json)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "acting user id (sent as X-User-Id)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

// getClient creates a client with current config.
func getClient() *client.Client {
	return client.New(userID, client.WithServer(serverURL), client.WithToken(cfg.Token))
}

// requireUser rejects commands that need an acting identity when none is
// configured.
func requireUser() bool {
	if userID == "" {
		out.Error("No user id configured. Pass --user or run 'projectctl config set --user <uuid>'.")
		return false
	}
	return true
}
