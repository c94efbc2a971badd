package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anonto42/pegawe/backend/internal/auth"
	"github.com/anonto42/pegawe/backend/internal/seed"
	"github.com/anonto42/pegawe/backend/pkg/config"
	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			db, err := config.InitDB(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := config.Migrate(db.Gorm); err != nil {
				return err
			}
			logger.Info("Schema migrated", slog.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo data set",
		Long:  "Seed migrates the schema, deletes every row and loads the demo users, jobs, applications, bookmarks, reviews and notifications.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			db, err := config.InitDB(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := config.Migrate(db.Gorm); err != nil {
				return err
			}
			summary, err := seed.Run(cmd.Context(), db.Gorm, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d jobs, %d applications, %d bookmarks, %d reviews, %d notifications\n",
				summary.Users, summary.Jobs, summary.Applications, summary.Bookmarks, summary.Reviews, summary.Notifications)
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  "Hashes the password argument, or the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
