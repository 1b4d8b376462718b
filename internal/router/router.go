package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/TRrajputDEV/Pixels-sub000/internal/handler"
	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health    *handler.HealthHandler
	Video     *handler.VideoHandler
	Channel   *handler.ChannelHandler
	Discovery *handler.DiscoveryHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
// limiter may be nil to disable rate limiting.
func Setup(app *fiber.App, h *Handlers, corsOrigins string, limiter *middleware.RateLimiter) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(metrics.Middleware())

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	if limiter != nil {
		api.Use(limiter.Handler())
	}

	// Video routes
	api.Get("/videos", h.Video.List)
	api.Post("/videos", h.Video.Create)
	api.Get("/videos/:videoId", h.Video.Get)

	// Channel routes
	api.Get("/channels/:ownerId/stats", h.Channel.Stats)

	// Discovery routes
	api.Post("/discovery/classify", h.Discovery.Classify)
	api.Post("/discovery/tags", h.Discovery.Tags)
}
