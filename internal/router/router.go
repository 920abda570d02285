package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// Handlers is the set of HTTP handlers mounted under /api.
type Handlers struct {
	Auth          *handler.AuthHandler
	Health        *handler.HealthHandler
	Dashboard     *handler.DashboardHandler
	Events        *handler.EventHandler
	Seating       *handler.SeatingHandler
	SeatRequests  *handler.SeatRequestHandler
	Suggestions   *handler.SuggestionHandler
	Business      *handler.SettingsHandler
	Stage         *handler.SettingsHandler
	LayoutHistory *handler.LayoutHistoryHandler
}

// Options carries the middleware configuration. A nil Redis client turns
// the response cache off and moves rate limiting in-process.
type Options struct {
	JWTSecret    string
	AuthRequired bool
	CORSOrigins  []string
	Cache        config.CacheConfig
	RateLimit    config.RateLimitConfig
	Redis        *redis.Client
}

// cacheDependencies lists cache groups made stale by writes to another
// group: approving a request changes seating.
var cacheDependencies = map[string][]string{
	"seat-requests": {"seating"},
	"events":        {"seating"},
}

// New builds the echo instance with the global middleware chain and every
// route registered.
func New(h Handlers, opts Options, logger *logrus.Entry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	e.Pre(middleware.CORS(opts.CORSOrigins))
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger.WithField("component", "http")))

	Register(e, h, opts, logger)
	return e
}

// Register mounts the /api routes. Public routes never require a token;
// admin routes require one when opts.AuthRequired is set.
func Register(e *echo.Echo, h Handlers, opts Options, logger *logrus.Entry) {
	api := e.Group("/api")

	cache := middleware.NewRedisCache(opts.Cache, opts.Redis, logger)
	invalidate := middleware.InvalidateCache(opts.Cache, opts.Redis, logger, cacheDependencies)
	limit := middleware.NewTokenBucket(opts.RateLimit, opts.Redis, logger)

	// public
	api.GET("/health", h.Health.Health)
	api.POST("/login", h.Auth.Login, limit)

	api.GET("/events", h.Events.List, cache)
	api.GET("/events/:id", h.Events.Get, cache)
	api.GET("/seating", h.Seating.List, cache)
	api.GET("/seating/:id", h.Seating.Get, cache)
	api.GET("/settings", h.Business.Get, cache)
	api.GET("/stage-settings", h.Stage.Get, cache)

	api.POST("/seat-requests", h.SeatRequests.Create, limit)
	api.POST("/suggestions", h.Suggestions.Create, limit)

	// admin
	admin := api.Group("")
	if opts.AuthRequired {
		admin.Use(middleware.JWTAuth(opts.JWTSecret))
		admin.GET("/me", h.Auth.Me)
	}
	admin.Use(invalidate)

	admin.GET("/dashboard-stats", h.Dashboard.Stats)

	admin.POST("/events", h.Events.Create)
	admin.PUT("/events/:id", h.Events.Update)
	admin.DELETE("/events/:id", h.Events.Delete)

	admin.POST("/seating", h.Seating.Create)
	admin.PATCH("/seating/:id", h.Seating.Patch)
	admin.DELETE("/seating/:id", h.Seating.Delete)

	admin.PUT("/settings", h.Business.Put)
	admin.PUT("/stage-settings", h.Stage.Put)

	admin.GET("/seat-requests", h.SeatRequests.List)
	admin.GET("/seat-requests/:id", h.SeatRequests.Get)
	admin.PUT("/seat-requests/:id", h.SeatRequests.Update)
	admin.POST("/seat-requests/:id/approve", h.SeatRequests.Approve)
	admin.POST("/seat-requests/:id/deny", h.SeatRequests.Deny)

	admin.GET("/suggestions", h.Suggestions.List)
	admin.GET("/suggestions/:id", h.Suggestions.Get)
	admin.PUT("/suggestions/:id", h.Suggestions.Update)

	admin.POST("/layout-history", h.LayoutHistory.Create)
	admin.GET("/layout-history", h.LayoutHistory.List)
	admin.POST("/layout-history/prune", h.LayoutHistory.Prune)
	admin.GET("/layout-history/:id", h.LayoutHistory.Get)
}
