package services

import (
	"errors"
	"strings"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStore is the persistence boundary for user records. The quota tracker
// and the auth flows both go through it, which keeps the daily-usage
// read-modify-write in one place and lets tests run against an in-memory copy.
type UserStore interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)

	SaveLoginCode(id uuid.UUID, codeHash string, expiresAt time.Time) error
	ClearLoginCode(id uuid.UUID) error

	// ResetUsage zeroes the daily counter when the stored day differs from
	// day. Reports whether a row was actually updated.
	ResetUsage(id uuid.UUID, day time.Time) (bool, error)

	// IncrementUsage adds one gated action for the given day, but only while
	// the counter is below limit. It returns the counter after the statement
	// and whether the increment was applied. A single conditional UPDATE, so
	// concurrent solves cannot push a free user past the ceiling.
	IncrementUsage(id uuid.UUID, day time.Time, limit int) (int, bool, error)
}

// NormalizeEmail case-folds and trims an email for use as a login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GormUserStore is the PostgreSQL-backed UserStore.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) SaveLoginCode(id uuid.UUID, codeHash string, expiresAt time.Time) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp_code_hash":  codeHash,
		"otp_expires_at": expiresAt,
	}).Error
}

func (s *GormUserStore) ClearLoginCode(id uuid.UUID) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp_code_hash":  "",
		"otp_expires_at": nil,
	}).Error
}

func (s *GormUserStore) ResetUsage(id uuid.UUID, day time.Time) (bool, error) {
	result := s.db.Model(&models.User{}).
		Where("id = ? AND last_reset_at <> ?", id, day).
		Updates(map[string]interface{}{
			"daily_count":   0,
			"last_reset_at": day,
		})
	return result.RowsAffected > 0, result.Error
}

func (s *GormUserStore) IncrementUsage(id uuid.UUID, day time.Time, limit int) (int, bool, error) {
	var count int
	result := s.db.Raw(
		`UPDATE users
		 SET daily_count = daily_count + 1, last_reset_at = ?, updated_at = NOW()
		 WHERE id = ? AND daily_count < ? AND deleted_at IS NULL
		 RETURNING daily_count`,
		day, id, limit,
	).Scan(&count)
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		// Another request consumed the last slot between check and commit.
		return limit, false, nil
	}
	return count, true, nil
}

// IsNotFound reports whether err is the store's record-missing error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
