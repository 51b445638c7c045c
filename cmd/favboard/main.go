// Command favboard runs the favboard API and its maintenance tasks.
//
//	favboard migrate up     # apply pending Postgres migrations
//	favboard seed admin     # create the admin identity from ADMIN_EMAIL/ADMIN_PASSWORD
//	favboard serve          # start the HTTP server
//
// Settings come from the environment; see internal/pkg/config.
//
// @title                       favboard API
// @version                     1.0
// @description                 Posts shared by admins that users can favorite.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/favboard/favboard-api/internal/pkg/config"
	"github.com/favboard/favboard-api/pkg/logger"
)

const serviceName = "favboard-api"

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "favboard",
	Short:         "favboard API server and maintenance commands",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  !cfg.IsProduction(),
			Service: serviceName,
		})
		return nil
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
