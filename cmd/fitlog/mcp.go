// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/fitlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to read and log your workouts through a standardized
protocol. The server communicates via stdin/stdout; logs go to stderr or the
configured log file.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "fitlog": {
        "command": "fitlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises, get_exercise, create_exercise, update_exercise, delete_exercise
  list_workouts, get_workout, create_workout, update_workout, delete_workout
  add_workout_exercise, remove_workout_exercise
  add_set, update_set, delete_set
  log_workout           Save a whole workout and report new records
  list_templates, get_template, create_template, delete_template, apply_template
  get_stats, get_progress, list_records, check_record
  export_data, import_data

AVAILABLE RESOURCES:

  fitlog://stats      Workout totals
  fitlog://records    Recent personal records
  fitlog://recent     Last 5 workouts with sets`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo,
			mcp.WithProgressDays(cfg.GetProgressDays()),
			mcp.WithRecordLimit(cfg.GetRecordLimit()),
		)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
