package gigs

import (
	"errors"
	"strconv"

	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/edupadihq/edupadi-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GigHandler struct {
	service *GigService
}

func NewGigHandler(service *GigService) *GigHandler {
	return &GigHandler{service: service}
}

// Create handles POST /api/gigs
func (h *GigHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication required",
		})
	}

	var in GigInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	gig, err := h.service.Create(user.ID, &in)
	if err != nil {
		var rejected *ContentRejectedError
		if errors.As(err, &rejected) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": true, "message": rejected.Error(), "code": rejected.Reason,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(gig)
}

// List handles GET /api/gigs
func (h *GigHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	items, total, err := h.service.List(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list gigs",
		})
	}

	return c.JSON(fiber.Map{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Takedown handles DELETE /api/admin/gigs/:id
func (h *GigHandler) Takedown(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid gig ID",
		})
	}

	if err := h.service.Takedown(id); err != nil {
		if errors.Is(err, ErrGigNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Gig not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove gig",
		})
	}

	return c.JSON(fiber.Map{"message": "Gig removed"})
}
