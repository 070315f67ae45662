package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminTestApp(cfg *config.Config, user *models.User) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			if user != nil {
				c.Locals(userLocalKey, user)
			}
			return c.Next()
		},
		AdminRequired(cfg),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

func TestAdminRequiredOpsToken(t *testing.T) {
	app := adminTestApp(&config.Config{AdminToken: "ops-token"}, nil)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-Admin-Token", "ops-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-Admin-Token", "wrong-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredByEmail(t *testing.T) {
	cfg := &config.Config{AdminEmails: "ops@edupadi.ng, boss@edupadi.ng"}

	admin := &models.User{ID: uuid.New(), Email: "ops@edupadi.ng"}
	resp, err := adminTestApp(cfg, admin).Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	student := &models.User{ID: uuid.New(), Email: "student@example.com"}
	resp, err = adminTestApp(cfg, student).Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminRequiredByRole(t *testing.T) {
	cfg := &config.Config{}

	admin := &models.User{ID: uuid.New(), Email: "someone@example.com", Role: "admin"}
	resp, err := adminTestApp(cfg, admin).Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRequiredNoIdentity(t *testing.T) {
	resp, err := adminTestApp(&config.Config{}, nil).Test(httptest.NewRequest("GET", "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
