package gigs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

const defaultPageSize = 20

// ContentRejectedError names the moderation rule a listing tripped.
type ContentRejectedError struct {
	Reason string
}

func (e *ContentRejectedError) Error() string {
	return fmt.Sprintf("listing rejected: %s", e.Reason)
}

// GigInput is a new listing before validation.
type GigInput struct {
	Title   string `json:"title"`
	Desc    string `json:"desc"`
	Price   int64  `json:"price"`
	Contact string `json:"contact"`
}

// ValidateInput enforces the marketplace's required fields.
func ValidateInput(in *GigInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if len(in.Title) > 120 {
		return errors.New("title too long (max 120 characters)")
	}
	if in.Price <= 0 {
		return errors.New("price must be a positive amount in naira")
	}
	return nil
}

// GigService handles listing creation and browsing.
type GigService struct {
	db         *gorm.DB
	moderation *services.ModerationService
}

func NewGigService(db *gorm.DB, moderation *services.ModerationService) *GigService {
	return &GigService{db: db, moderation: moderation}
}

func (s *GigService) Create(userID uuid.UUID, in *GigInput) (*Gig, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	if ok, reason := s.moderation.FilterContent(in.Title + " " + in.Desc); !ok {
		return nil, &ContentRejectedError{Reason: reason}
	}

	gig := &Gig{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   strings.TrimSpace(in.Title),
		Desc:    strings.TrimSpace(in.Desc),
		Price:   in.Price,
		Contact: strings.TrimSpace(in.Contact),
	}
	if err := s.db.Create(gig).Error; err != nil {
		return nil, fmt.Errorf("failed to save gig: %w", err)
	}
	return gig, nil
}

// List returns the newest gigs first, 20 per page like the original feed.
func (s *GigService) List(page, limit int) ([]Gig, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = defaultPageSize
	}

	var total int64
	s.db.Model(&Gig{}).Count(&total)

	var items []Gig
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error

	return items, total, err
}

// Takedown soft-deletes a listing after a moderation decision.
func (s *GigService) Takedown(id uuid.UUID) error {
	result := s.db.Delete(&Gig{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}
