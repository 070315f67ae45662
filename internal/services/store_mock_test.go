package services

import (
	"sync"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore is an in-memory UserStore that mirrors the conditional-update
// semantics of the SQL implementation.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *memStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) SaveLoginCode(id uuid.UUID, codeHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.OtpCodeHash = codeHash
	u.OtpExpiresAt = &expiresAt
	return nil
}

func (s *memStore) ClearLoginCode(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.OtpCodeHash = ""
	u.OtpExpiresAt = nil
	return nil
}

func (s *memStore) ResetUsage(id uuid.UUID, day time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	if u.LastResetAt.Equal(day) {
		return false, nil
	}
	u.DailyCount = 0
	u.LastResetAt = day
	return true, nil
}

func (s *memStore) IncrementUsage(id uuid.UUID, day time.Time, limit int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return limit, false, nil
	}
	if u.DailyCount >= limit {
		return limit, false, nil
	}
	u.DailyCount++
	u.LastResetAt = day
	return u.DailyCount, true, nil
}

// seed inserts a user directly, bypassing the auth flows.
func (s *memStore) seed(user *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	s.users[user.ID] = &cp
	return user
}
