package middleware

import (
	"errors"
	"strings"

	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "currentUser"

// Protected is the auth gate: bearer token in, trusted identity out.
// The token signature alone is not enough; the referenced user must still
// exist, so deleted accounts lose access immediately. It never writes.
func Protected(tokens *services.TokenService, store services.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return unauthorized(c, "Unauthorized: missing bearer token")
		}

		userID, err := tokens.Verify(strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			return unauthorized(c, "Unauthorized: invalid or expired token")
		}

		user, err := store.FindByID(userID)
		if err != nil {
			return unauthorized(c, "Unauthorized: invalid or expired token")
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// CurrentUser returns the identity the auth gate attached to the request.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userLocalKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
