// Command pegawe runs the Pegawe job board API and its maintenance tasks.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/anonto42/pegawe/backend/pkg/config"
	"github.com/spf13/cobra"
)

const appName = "pegawe"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Pegawe job board backend",
		Long: `Pegawe serves the job board API: job listings, applications,
bookmarks, reviews and the back office.

Run without a subcommand to start the API server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		seedCmd(&configPath),
		jobsCmd(),
		hashPasswordCmd(),
	)
	return cmd
}

// bootstrap loads configuration and builds the process logger
func bootstrap(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
