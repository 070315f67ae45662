package bundles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DataBundle is one mobile-data offer in the price catalog. Rows are edited
// by admins so deals change without redeploying the app.
type DataBundle struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Provider  string         `gorm:"size:20;not null;index" json:"provider"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	MB        int            `gorm:"not null" json:"mb"`
	Price     int64          `gorm:"not null" json:"price"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
