package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/favboard/favboard-api/internal/infrastructure/db/postgres"
	"github.com/favboard/favboard-api/internal/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema",
	Long:  `Manage the Postgres schema. Mongo collections need no migrations; their indexes are created on startup.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if cfg.StorageDriver != config.StorageDriverPostgres {
			return fmt.Errorf("migrate requires STORAGE_DRIVER=%s", config.StorageDriverPostgres)
		}
		return nil
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
			changed, err := m.Up()
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
			if err := m.Down(steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
			st, err := m.Status()
			if err != nil {
				return err
			}
			if !st.Applied {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %t\n", st.Version, st.Dirty)
			return nil
		})
	},
}

// withMigrator opens a dedicated connection for the duration of fn.
func withMigrator(ctx context.Context, fn func(*postgres.Migrator) error) error {
	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, Log: log})
	if err != nil {
		return err
	}
	defer postgres.Close(db)

	m, err := postgres.NewMigrator(db)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
