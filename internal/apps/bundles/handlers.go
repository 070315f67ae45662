package bundles

import (
	"errors"
	"strconv"

	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BundleHandler struct {
	service *BundleService
}

func NewBundleHandler(service *BundleService) *BundleHandler {
	return &BundleHandler{service: service}
}

// List handles GET /api/bundles
func (h *BundleHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list bundles",
		})
	}
	return c.JSON(items)
}

// BestValue handles GET /api/bundles/best?mb=500
func (h *BundleHandler) BestValue(c *fiber.Ctx) error {
	minMB, _ := strconv.Atoi(c.Query("mb", "0"))

	items, err := h.service.BestValue(minMB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to rank bundles",
		})
	}
	return c.JSON(items)
}

// Create handles POST /api/admin/bundles
func (h *BundleHandler) Create(c *fiber.Ctx) error {
	var in BundleInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	bundle, err := h.service.Create(&in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(bundle)
}

// Update handles PUT /api/admin/bundles/:id
func (h *BundleHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid bundle ID",
		})
	}

	var in BundleInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	bundle, err := h.service.Update(id, &in)
	if err != nil {
		if errors.Is(err, ErrBundleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Bundle not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(bundle)
}

// Delete handles DELETE /api/admin/bundles/:id
func (h *BundleHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid bundle ID",
		})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrBundleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Bundle not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete bundle",
		})
	}
	return c.JSON(fiber.Map{"message": "Bundle deleted"})
}
