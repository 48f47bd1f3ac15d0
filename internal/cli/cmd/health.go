package cmd

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long:  `Check the readiness of the projects server and its dependencies.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := getClient()

		health, err := c.Health()
		if err != nil {
			if jsonOutput {
				out.JSON(map[string]any{
					"status": "error",
					"error":  err.Error(),
				})
			} else {
				out.Error("Server unreachable: %v", err)
			}
			return
		}

		if jsonOutput {
			out.JSON(health)
			return
		}

		if health.Status == "ready" {
			out.Success("Server is ready")
		} else {
			out.Warn("Server is not ready")
		}
		out.KeyValue("Database", health.Database)
		if health.Nats != "" {
			out.KeyValue("NATS", health.Nats)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
