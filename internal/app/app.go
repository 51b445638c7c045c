// Package app assembles the favboard API from configuration: storage,
// services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/favboard/favboard-api/internal/api"
	"github.com/favboard/favboard-api/internal/core/service"
	"github.com/favboard/favboard-api/internal/pkg/config"
)

// App is a fully wired API server.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	storage *Storage
	echo    *echo.Echo
}

// Option adjusts the router dependencies before the router is built.
type Option func(*api.RouterDeps)

// WithRegistry routes HTTP metrics to reg instead of the global registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(d *api.RouterDeps) {
		d.Registerer = reg
		d.Gatherer = reg
	}
}

// New wires the services on top of storage and builds the router.
func New(cfg *config.Config, storage *Storage, log zerolog.Logger, opts ...Option) *App {
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	auth := service.NewAuthService(storage.Identities, hasher, tokens, log)
	users := service.NewUserService(storage.Identities, hasher, storage.Cache, log)
	posts := service.NewPostService(storage.Posts, storage.Cache, log)

	deps := api.RouterDeps{
		Log:          log,
		Development:  !cfg.IsProduction(),
		Auth:         auth,
		Users:        users,
		Posts:        posts,
		Resolver:     service.NewResolver(tokens, storage.Identities),
		HealthChecks: storage.Checks,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	e := api.NewRouter(deps)

	return &App{cfg: cfg, log: log, storage: storage, echo: e}
}

// Handler exposes the router.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within SHUTDOWN_TIMEOUT and releases storage.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    net.JoinHostPort("", a.cfg.Port),
		Handler: a.echo,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = a.storage.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if cerr := a.storage.Close(shutdownCtx); cerr != nil {
		a.log.Error().Err(cerr).Msg("storage close failed")
	}
	if err != nil {
		return err
	}
	a.log.Info().Msg("server stopped")
	return nil
}
