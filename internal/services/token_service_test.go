package services

import (
	"testing"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(expiry time.Duration) *TokenService {
	return NewTokenService(&config.Config{
		JWTSecret: "test-secret-at-least-32-characters",
		JWTExpiry: expiry,
	})
}

func TestTokenIssueAndVerify(t *testing.T) {
	tokens := newTokenService(time.Hour)
	user := &models.User{ID: uuid.New(), Email: "student@example.com"}

	token, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	tokens := newTokenService(time.Hour)
	user := &models.User{ID: uuid.New(), Email: "student@example.com"}

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	// Flipping any single character must invalidate the token.
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		_, err := tokens.Verify(string(tampered))
		assert.ErrorIs(t, err, ErrInvalidToken, "position %d", i)
	}
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	tokens := newTokenService(time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	tokens := newTokenService(-time.Minute)
	user := &models.User{ID: uuid.New(), Email: "student@example.com"}

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	issuer := newTokenService(time.Hour)
	verifier := NewTokenService(&config.Config{
		JWTSecret: "a-completely-different-secret-key",
		JWTExpiry: time.Hour,
	})
	user := &models.User{ID: uuid.New(), Email: "student@example.com"}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
