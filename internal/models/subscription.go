package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records a premium purchase reported by the payment provider.
// The user's IsPremium flag is the source of truth for gating; rows here
// exist for support and reconciliation.
type Subscription struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Reference          string    `gorm:"size:255;uniqueIndex" json:"reference"`
	PlanCode           string    `gorm:"size:255" json:"plan_code"`
	AmountKobo         int64     `json:"amount_kobo"`
	Status             string    `gorm:"not null;default:'inactive';size:50" json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	User               User      `gorm:"foreignKey:UserID" json:"-"`
}
