package services

import (
	"fmt"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/models"
)

// QuotaExceededError carries the numbers the client displays on the
// upgrade prompt.
type QuotaExceededError struct {
	Count int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily free limit reached (%d/%d)", e.Count, e.Limit)
}

// QuotaDecision is the outcome of a quota check for one gated action.
type QuotaDecision struct {
	Allowed bool
	Count   int
	Limit   int
	Premium bool
}

// QuotaService enforces the daily free-question ceiling. Premium users are
// unbounded. The counter resets lazily: the first check on a new UTC
// calendar day zeroes it, there is no midnight job. Check and Commit are
// deliberately separate so a failed provider call never consumes quota.
type QuotaService struct {
	store UserStore
	limit int
}

func NewQuotaService(store UserStore, limit int) *QuotaService {
	return &QuotaService{store: store, limit: limit}
}

func (s *QuotaService) Limit() int { return s.limit }

// Check decides whether user may perform one more gated action today.
// A lazy reset is persisted even when the check ends in a deny, so the
// stored lastResetAt always reflects the day that count was observed on.
func (s *QuotaService) Check(user *models.User) (QuotaDecision, error) {
	if user.IsPremium {
		return QuotaDecision{Allowed: true, Count: user.DailyCount, Limit: s.limit, Premium: true}, nil
	}

	today := TodayUTC()
	count := user.DailyCount
	if !dayOf(user.LastResetAt).Equal(today) {
		if _, err := s.store.ResetUsage(user.ID, today); err != nil {
			return QuotaDecision{}, fmt.Errorf("failed to reset daily usage: %w", err)
		}
		count = 0
		user.DailyCount = 0
		user.LastResetAt = today
	}

	return QuotaDecision{
		Allowed: count < s.limit,
		Count:   count,
		Limit:   s.limit,
	}, nil
}

// Commit records one consumed gated action after it actually completed.
// The increment is a single conditional UPDATE in the store, so two racing
// requests cannot take the counter past the ceiling; the loser's commit is
// a no-op and reports the ceiling as the current count.
func (s *QuotaService) Commit(user *models.User) (int, error) {
	if user.IsPremium {
		return user.DailyCount, nil
	}

	count, applied, err := s.store.IncrementUsage(user.ID, TodayUTC(), s.limit)
	if err != nil {
		return 0, fmt.Errorf("failed to record usage: %w", err)
	}
	if applied {
		user.DailyCount = count
	}
	return count, nil
}

// TodayUTC returns the current UTC calendar day at midnight. Reset
// boundaries follow the server's UTC date, not the client's timezone.
func TodayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
