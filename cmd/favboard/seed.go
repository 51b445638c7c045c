package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/favboard/favboard-api/internal/app"
	"github.com/favboard/favboard-api/internal/core/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load initial data",
}

var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create the admin identity unless it exists",
	Long:  `Create an admin identity from ADMIN_EMAIL and ADMIN_PASSWORD. Running it again is a no-op.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		storage, err := app.OpenStorage(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer storage.Close(ctx)

		auth := service.NewAuthService(
			storage.Identities,
			service.NewBcryptHasher(cfg.Auth.BcryptCost),
			service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
			log,
		)
		admin, created, err := auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", admin.Email)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", admin.Email, admin.ID)
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(seedCmd)
}
