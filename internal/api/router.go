package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/favboard/favboard-api/docs"
	"github.com/favboard/favboard-api/internal/api/handler"
	"github.com/favboard/favboard-api/internal/api/middleware"
	"github.com/favboard/favboard-api/internal/core/ports"
)

const bodyLimit = "1M"

// RouterDeps carries everything NewRouter wires into the routes.
type RouterDeps struct {
	Log         zerolog.Logger
	Development bool

	Auth     ports.AuthService
	Users    ports.UserService
	Posts    ports.PostService
	Resolver ports.IdentityResolver

	HealthChecks []handler.DependencyCheck

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ContextLogger(deps.Log))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "favboard",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper:    skipOperational,
	}))
	e.Use(echomiddleware.CORS())
	e.Use(middleware.SecureHeaders(deps.Development))
	e.Use(echomiddleware.GzipWithConfig(echomiddleware.GzipConfig{Skipper: skipOperational}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	postHandler := handler.NewPostHandler(deps.Posts)

	authenticated := middleware.Gate(deps.Resolver, middleware.PolicyAuthenticated)
	selfOrAdmin := middleware.Gate(deps.Resolver, middleware.PolicySelfOrAdmin)
	adminOnly := middleware.Gate(deps.Resolver, middleware.PolicyAdminOnly)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	api.GET("/users", userHandler.List, adminOnly)
	api.GET("/users/me", userHandler.Me, authenticated)
	api.PATCH("/users/:id", userHandler.Update, selfOrAdmin)
	api.DELETE("/users/:id", userHandler.Delete, selfOrAdmin)

	// --- Post routes ---
	// Static segments take precedence over :id in echo's router.
	api.GET("/posts", postHandler.List)
	api.POST("/posts", postHandler.Create, adminOnly)
	api.GET("/posts/my/posts", postHandler.MyPosts, adminOnly)
	api.GET("/posts/my/favorites", postHandler.MyFavorites, authenticated)
	api.POST("/posts/favorites", postHandler.AddFavorite, authenticated)
	api.DELETE("/posts/favorites/:id", postHandler.RemoveFavorite, authenticated)
	api.GET("/posts/:id", postHandler.Get)
	api.PATCH("/posts/:id", postHandler.Update, adminOnly)
	api.DELETE("/posts/:id", postHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks...)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}
