package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskflowhq/projectd/internal/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if jsonOutput {
			out.JSON(map[string]any{
				"path":    path,
				"server":  serverURL,
				"user_id": cfg.UserID,
				"token":   maskToken(cfg.Token),
			})
			return
		}

		out.Header("Configuration")
		out.KeyValue("Path", path)
		out.KeyValue("Server", serverURL)
		out.KeyValue("User", orUnset(cfg.UserID))
		out.KeyValue("Token", maskToken(cfg.Token))
	},
}

var (
	configSetServer string
	configSetUser   string
	configSetToken  string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update configuration values",
	Run: func(cmd *cobra.Command, args []string) {
		if configSetServer != "" {
			cfg.Server = configSetServer
		}
		if configSetUser != "" {
			cfg.UserID = configSetUser
		}
		if configSetToken != "" {
			cfg.Token = configSetToken
		}

		if err := config.Save(cfg, cfgFile); err != nil {
			out.Error("Failed to save config: %v", err)
			return
		}
		out.Success("Configuration saved")
	},
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) < 16 {
		return "***"
	}
	return token[:8] + "..." + token[len(token)-4:]
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func init() {
	configSetCmd.Flags().StringVar(&configSetServer, "server", "", "server URL")
	configSetCmd.Flags().StringVar(&configSetUser, "user", "", "acting user id")
	configSetCmd.Flags().StringVar(&configSetToken, "token", "", "bearer token forwarded to the user directory")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
