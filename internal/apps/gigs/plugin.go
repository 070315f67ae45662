package gigs

import (
	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin implements the apps.Plugin interface for the gigs marketplace.
type Plugin struct {
	moderation *services.ModerationService
}

// New creates a new gigs Plugin.
func New(moderation *services.ModerationService) *Plugin {
	return &Plugin{moderation: moderation}
}

func (p *Plugin) ID() string { return "gigs" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Gig{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGigService(db, p.moderation)
	handler := NewGigHandler(svc)

	router.Post("/gigs", handler.Create)
}

// RegisterPublicRoutes exposes browsing without a login; anyone can window-shop.
func (p *Plugin) RegisterPublicRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGigService(db, p.moderation)
	handler := NewGigHandler(svc)

	router.Get("/gigs", handler.List)
}

// RegisterAdminRoutes exposes takedown for actioned reports.
func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGigService(db, p.moderation)
	handler := NewGigHandler(svc)

	router.Delete("/gigs/:id", handler.Takedown)
}
