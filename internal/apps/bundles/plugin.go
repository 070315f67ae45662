package bundles

import (
	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin wires the data bundle catalog into the app registry.
type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string {
	return "bundles"
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&DataBundle{}}
}

// RegisterRoutes has nothing to mount; the catalog is browse-only.
func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
}

func (p *Plugin) RegisterPublicRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewBundleHandler(NewBundleService(db))

	router.Get("/bundles", handler.List)
	router.Get("/bundles/best", handler.BestValue)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewBundleHandler(NewBundleService(db))

	router.Post("/bundles", handler.Create)
	router.Put("/bundles/:id", handler.Update)
	router.Delete("/bundles/:id", handler.Delete)
}
