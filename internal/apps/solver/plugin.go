package solver

import (
	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin implements the apps.Plugin interface for the homework solver.
type Plugin struct {
	quota *services.QuotaService
}

// New creates a new solver Plugin. The quota service is shared with the
// rest of the backend because it mutates the same user rows auth reads.
func New(quota *services.QuotaService) *Plugin {
	return &Plugin{quota: quota}
}

func (p *Plugin) ID() string { return "solver" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&SolveRecord{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewSolveService(NewGormRecordStore(db), p.quota, NewHTTPProvider(cfg))
	handler := NewSolveHandler(svc)

	router.Post("/solve", handler.Solve)
	router.Get("/solver/history", handler.History)
	router.Get("/solver/usage", handler.Usage)
}
