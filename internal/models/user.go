package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the single account model shared by every EduPadi feature.
// Password and OTP hashes never leave the server; both carry json:"-" and
// handlers only ever serialize through dto.UserResponse.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;default:'user'" json:"role"`
	AuthProvider string    `gorm:"size:50;default:'email'" json:"-"`
	IsPremium    bool      `gorm:"default:false" json:"isPremium"`

	// Daily solver usage. DailyCount only means anything relative to
	// LastResetAt: a count observed on a stale calendar day reads as zero.
	DailyCount  int       `gorm:"default:0" json:"-"`
	LastResetAt time.Time `gorm:"type:date;not null;default:CURRENT_DATE" json:"-"`

	// Passwordless login code (emailed, stored hashed).
	OtpCodeHash  string     `gorm:"size:64" json:"-"`
	OtpExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
