package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/clipdeck/clipdeck-go/internal/handler"
	"github.com/clipdeck/clipdeck-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Clip       *handler.ClipHandler
	Engagement *handler.EngagementHandler
	Stats      *handler.StatsHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, verifier *middleware.TokenVerifier, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics live outside the API group: no auth, no CORS
	// requirements from browsers.
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	feedLimit := middleware.NewFeedRateLimiter()
	createLimit := middleware.NewClipCreateRateLimiter()
	deleteLimit := middleware.NewClipDeleteRateLimiter()
	likeLimit := middleware.NewLikeRateLimiter()
	commentLimit := middleware.NewCommentRateLimiter()
	statsLimit := middleware.NewStatsRateLimiter()

	// All API reads resolve the viewer once here; handlers never touch
	// the Authorization header themselves.
	api := app.Group("/api", middleware.OptionalViewer(verifier))

	// Clip routes. /clips/user/:userId must precede /clips/:id so the
	// literal "user" segment is not captured as a clip ID.
	api.Get("/clips", h.Clip.Feed, feedLimit.Handler())
	api.Post("/clips", h.Clip.Create, middleware.RequireAuth(verifier), createLimit.Handler())
	api.Get("/clips/user/:userId", h.Clip.ByAuthor, feedLimit.Handler())
	api.Get("/clips/:id", h.Clip.GetOne, feedLimit.Handler())
	api.Delete("/clips/:id", h.Clip.Delete, middleware.RequireAuth(verifier), deleteLimit.Handler())

	// Engagement routes
	api.Post("/clips/:id/like", h.Engagement.ToggleLike, middleware.RequireAuth(verifier), likeLimit.Handler())
	api.Get("/clips/:id/comments", h.Engagement.ListComments, feedLimit.Handler())
	api.Post("/clips/:id/comments", h.Engagement.AddComment, middleware.RequireAuth(verifier), commentLimit.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimit.Handler())
}
