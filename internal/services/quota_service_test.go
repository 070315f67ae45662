package services

import (
	"testing"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuotaFixture(t *testing.T, limit int, premium bool) (*QuotaService, *memStore, *models.User) {
	t.Helper()
	store := newMemStore()
	user := store.seed(&models.User{
		Email:       "student@example.com",
		IsPremium:   premium,
		LastResetAt: TodayUTC(),
	})
	return NewQuotaService(store, limit), store, user
}

func TestQuotaAllowsUpToLimit(t *testing.T) {
	quota, _, user := newQuotaFixture(t, 3, false)

	for want := 1; want <= 3; want++ {
		decision, err := quota.Check(user)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, want-1, decision.Count)

		count, err := quota.Commit(user)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	decision, err := quota.Check(user)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 3, decision.Count)
	assert.Equal(t, 3, decision.Limit)
}

func TestQuotaPremiumNeverDenied(t *testing.T) {
	quota, _, user := newQuotaFixture(t, 3, true)

	for i := 0; i < 10; i++ {
		decision, err := quota.Check(user)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.True(t, decision.Premium)

		_, err = quota.Commit(user)
		require.NoError(t, err)
	}

	// Premium commits are no-ops; the counter stays where it was.
	assert.Equal(t, 0, user.DailyCount)
}

func TestQuotaLazyResetOnNewDay(t *testing.T) {
	quota, store, user := newQuotaFixture(t, 3, false)

	for i := 0; i < 3; i++ {
		_, err := quota.Check(user)
		require.NoError(t, err)
		_, err = quota.Commit(user)
		require.NoError(t, err)
	}

	// Simulate the calendar rolling over: the stored day is now yesterday.
	yesterday := TodayUTC().AddDate(0, 0, -1)
	store.mu.Lock()
	store.users[user.ID].LastResetAt = yesterday
	store.mu.Unlock()
	user.LastResetAt = yesterday

	decision, err := quota.Check(user)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0, decision.Count)

	count, err := quota.Commit(user)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQuotaSameDayCheckDoesNotReset(t *testing.T) {
	quota, _, user := newQuotaFixture(t, 3, false)

	_, err := quota.Check(user)
	require.NoError(t, err)
	count, err := quota.Commit(user)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Repeated checks on the same day observe the same counter.
	for i := 0; i < 5; i++ {
		decision, err := quota.Check(user)
		require.NoError(t, err)
		assert.Equal(t, 1, decision.Count)
	}
}

func TestQuotaResetPersistedOnDeniedCheck(t *testing.T) {
	quota, store, user := newQuotaFixture(t, 0, false)

	yesterday := TodayUTC().AddDate(0, 0, -1)
	store.mu.Lock()
	store.users[user.ID].DailyCount = 5
	store.users[user.ID].LastResetAt = yesterday
	store.mu.Unlock()
	user.DailyCount = 5
	user.LastResetAt = yesterday

	// Limit 0 means the check always denies, but the day rollover must
	// still be written through.
	decision, err := quota.Check(user)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Count)

	stored, err := store.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.DailyCount)
	assert.True(t, stored.LastResetAt.Equal(TodayUTC()))
}

func TestQuotaCommitStopsAtCeiling(t *testing.T) {
	quota, store, user := newQuotaFixture(t, 3, false)

	store.mu.Lock()
	store.users[user.ID].DailyCount = 3
	store.mu.Unlock()

	// A commit racing past the ceiling is a no-op that reports the ceiling.
	count, err := quota.Commit(user)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	stored, err := store.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.DailyCount)
}

func TestTodayUTCIsMidnight(t *testing.T) {
	today := TodayUTC()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, time.UTC, today.Location())
}
