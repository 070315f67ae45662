package services

import (
	"fmt"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService turns payment webhook events into the premium flag
// the quota tracker reads. It is the only writer of User.IsPremium.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) HandleWebhookEvent(event string, data *dto.PaystackEvent) error {
	switch event {
	case "charge.success":
		return s.handleChargeSuccess(data)
	case "subscription.disable":
		return s.handleSubscriptionDisable(data)
	default:
		return nil
	}
}

func (s *SubscriptionService) handleChargeSuccess(data *dto.PaystackEvent) error {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(data.Customer.Email)).First(&user).Error; err != nil {
		return fmt.Errorf("no account for paying customer %q: %w", data.Customer.Email, err)
	}

	start := time.Now()
	if data.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			start = t
		}
	}

	sub := models.Subscription{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Reference:          data.Reference,
		PlanCode:           data.Plan.PlanCode,
		AmountKobo:         data.AmountKobo,
		Status:             "active",
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   periodEnd(start, data.Plan.Interval),
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("is_premium", true).Error
	})
}

func (s *SubscriptionService) handleSubscriptionDisable(data *dto.PaystackEvent) error {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(data.Customer.Email)).First(&user).Error; err != nil {
		return fmt.Errorf("no account for customer %q: %w", data.Customer.Email, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ?", user.ID).
			Update("status", "expired").Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("is_premium", false).Error
	})
}

func periodEnd(start time.Time, interval string) time.Time {
	switch interval {
	case "annually", "yearly":
		return start.AddDate(1, 0, 0)
	case "weekly":
		return start.AddDate(0, 0, 7)
	default:
		return start.AddDate(0, 1, 0)
	}
}
