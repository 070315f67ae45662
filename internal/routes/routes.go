package routes

import (
	"time"

	"github.com/edupadihq/edupadi-backend/internal/apps"
	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/edupadihq/edupadi-backend/internal/handlers"
	"github.com/edupadihq/edupadi-backend/internal/middleware"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	tokens *services.TokenService,
	store services.UserStore,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	webhookHandler *handlers.WebhookHandler,
	moderationHandler *handlers.ModerationHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/request-code", authHandler.RequestCode)
	auth.Post("/verify-code", authHandler.VerifyCode)

	// Webhooks — signature auth, no bearer token
	webhooks := api.Group("/webhooks")
	webhooks.Post("/paystack", webhookHandler.HandlePaystack)

	// Public plugin surfaces (gig feed, bundle catalog) must be mounted
	// before the gate below, which applies to everything under /api that
	// comes after it in the route stack.
	for _, p := range plugins {
		if pp, ok := p.(apps.PublicPlugin); ok {
			pp.RegisterPublicRoutes(api, db, cfg)
		}
	}

	gate := middleware.Protected(tokens, store)

	// Moderation — user endpoints (protected)
	api.Post("/reports", gate, moderationHandler.CreateReport)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", gate, middleware.AdminRequired(cfg))
	admin.Get("/moderation/reports", moderationHandler.ListReports)
	admin.Put("/moderation/reports/:id", moderationHandler.ActionReport)

	// Protected plugin routes share the /api prefix, so a plugin route
	// like Post("/solve") ends up at /api/solve.
	protected := api.Group("", gate)
	for _, p := range plugins {
		p.RegisterRoutes(protected, db, cfg)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}
