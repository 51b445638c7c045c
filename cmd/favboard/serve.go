package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/favboard/favboard-api/internal/app"
	"github.com/favboard/favboard-api/internal/infrastructure/db/postgres"
	"github.com/favboard/favboard-api/internal/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until SIGINT or SIGTERM.

With STORAGE_DRIVER=postgres pending migrations are applied on startup.
Use --no-migrate to skip them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate && cfg.StorageDriver == config.StorageDriverPostgres {
			if err := migrateUp(ctx); err != nil {
				return err
			}
		}

		storage, err := app.OpenStorage(ctx, cfg, log)
		if err != nil {
			return err
		}
		return app.New(cfg, storage, log).Run(ctx)
	},
}

func migrateUp(ctx context.Context) error {
	return withMigrator(ctx, func(m *postgres.Migrator) error {
		changed, err := m.Up()
		if err != nil {
			return err
		}
		if changed {
			log.Info().Msg("migrations applied")
		}
		return nil
	})
}

func init() {
	serveCmd.Flags().Bool("no-migrate", false, "skip database migrations on startup")
	rootCmd.AddCommand(serveCmd)
}
