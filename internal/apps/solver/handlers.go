package solver

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/edupadihq/edupadi-backend/internal/middleware"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// SolveRequest and its responses use the camelCase keys the web client
// binds to.
type SolveRequest struct {
	QuestionText string `json:"questionText"`
}

type SolveResponse struct {
	Answer    string `json:"answer"`
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
	IsPremium bool   `json:"isPremium"`
}

// QuotaExceededResponse carries the stable limitReached discriminator the
// upgrade prompt branches on.
type QuotaExceededResponse struct {
	Error        string `json:"error"`
	LimitReached bool   `json:"limitReached"`
	Count        int    `json:"count"`
	Limit        int    `json:"limit"`
}

type UsageResponse struct {
	Count     int  `json:"count"`
	Limit     int  `json:"limit"`
	IsPremium bool `json:"isPremium"`
}

type SolveHandler struct {
	service *SolveService
}

func NewSolveHandler(service *SolveService) *SolveHandler {
	return &SolveHandler{service: service}
}

// Solve handles POST /api/solve
func (h *SolveHandler) Solve(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication required",
		})
	}

	var req SolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.service.Solve(user, req.QuestionText)
	if err != nil {
		var quotaErr *services.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return c.Status(fiber.StatusForbidden).JSON(QuotaExceededResponse{
				Error:        quotaErr.Error(),
				LimitReached: true,
				Count:        quotaErr.Count,
				Limit:        quotaErr.Limit,
			})
		}
		if errors.Is(err, ErrEmptyQuestion) || errors.Is(err, ErrQuestionTooLong) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("solve failed", "user_id", user.ID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Sorry, I couldn't solve that right now. Try again later.",
		})
	}

	return c.JSON(SolveResponse{
		Answer:    result.Answer,
		Count:     result.Count,
		Limit:     result.Limit,
		IsPremium: result.IsPremium,
	})
}

// History handles GET /api/solver/history
func (h *SolveHandler) History(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication required",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	records, total, err := h.service.History(user, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get history",
		})
	}

	return c.JSON(fiber.Map{
		"data":  records,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Usage handles GET /api/solver/usage
func (h *SolveHandler) Usage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication required",
		})
	}

	decision, err := h.service.Usage(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get usage",
		})
	}

	return c.JSON(UsageResponse{
		Count:     decision.Count,
		Limit:     decision.Limit,
		IsPremium: decision.Premium,
	})
}
