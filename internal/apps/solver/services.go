package solver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyQuestion   = errors.New("question text is required")
	ErrQuestionTooLong = errors.New("question text too long (max 4000 characters)")
	ErrProviderFailure = errors.New("AI provider failed")
)

const maxQuestionLen = 4000

// RecordStore persists answered questions for the history view.
type RecordStore interface {
	Save(record *SolveRecord) error
	ListByUser(userID uuid.UUID, page, limit int) ([]SolveRecord, int64, error)
}

// GormRecordStore is the PostgreSQL-backed RecordStore.
type GormRecordStore struct {
	db *gorm.DB
}

func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

func (s *GormRecordStore) Save(record *SolveRecord) error {
	return s.db.Create(record).Error
}

func (s *GormRecordStore) ListByUser(userID uuid.UUID, page, limit int) ([]SolveRecord, int64, error) {
	var total int64
	s.db.Model(&SolveRecord{}).Where("user_id = ?", userID).Count(&total)

	var records []SolveRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error

	return records, total, err
}

// Result is the outcome of one successful solve.
type Result struct {
	Answer    string
	Count     int
	Limit     int
	IsPremium bool
}

// SolveService orchestrates one gated question: quota check, provider
// call, quota commit, history write. The commit only happens after the
// provider answered, so a provider failure never costs the student a
// question.
type SolveService struct {
	records  RecordStore
	quota    *services.QuotaService
	provider Provider
}

func NewSolveService(records RecordStore, quota *services.QuotaService, provider Provider) *SolveService {
	return &SolveService{records: records, quota: quota, provider: provider}
}

func (s *SolveService) Solve(user *models.User, questionText string) (*Result, error) {
	if len(questionText) == 0 {
		return nil, ErrEmptyQuestion
	}
	if len(questionText) > maxQuestionLen {
		return nil, ErrQuestionTooLong
	}

	decision, err := s.quota.Check(user)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &services.QuotaExceededError{Count: decision.Count, Limit: decision.Limit}
	}

	answer, err := s.provider.Solve(questionText)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, err)
	}

	count, err := s.quota.Commit(user)
	if err != nil {
		// The student already has the answer; losing the increment is the
		// lesser failure. Log it and return the answer anyway.
		slog.Error("failed to commit quota usage", "user_id", user.ID.String(), "error", err)
		count = decision.Count + 1
	}

	record := &SolveRecord{
		ID:       uuid.New(),
		UserID:   user.ID,
		Question: questionText,
		Answer:   answer.Text,
		Model:    answer.Model,
	}
	if err := s.records.Save(record); err != nil {
		slog.Error("failed to save solve record", "user_id", user.ID.String(), "error", err)
	}

	return &Result{
		Answer:    answer.Text,
		Count:     count,
		Limit:     decision.Limit,
		IsPremium: user.IsPremium,
	}, nil
}

// History returns the user's answered questions, newest first.
func (s *SolveService) History(user *models.User, page, limit int) ([]SolveRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.records.ListByUser(user.ID, page, limit)
}

// Usage reports today's consumption. Reading it may persist a lazy reset,
// which is fine: a denied or merely observed check commits the same-day
// reset too.
func (s *SolveService) Usage(user *models.User) (services.QuotaDecision, error) {
	return s.quota.Check(user)
}
