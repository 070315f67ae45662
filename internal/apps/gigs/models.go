package gigs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gig is one classified ad on the student marketplace. Prices are naira;
// contact is whatever the poster wants shown (phone, WhatsApp link).
type Gig struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"size:120;not null" json:"title"`
	Desc      string         `gorm:"type:text" json:"desc"`
	Price     int64          `gorm:"not null" json:"price"`
	Contact   string         `gorm:"size:120" json:"contact"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
