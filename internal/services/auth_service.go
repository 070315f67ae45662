package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/edupadihq/edupadi-backend/internal/email"
	"github.com/edupadihq/edupadi-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidCode        = errors.New("invalid or expired login code")
	ErrUserNotFound       = errors.New("user not found")
)

const loginCodeTTL = 10 * time.Minute

type AuthService struct {
	store  UserStore
	tokens *TokenService
	sender email.Sender
}

func NewAuthService(store UserStore, tokens *TokenService, sender email.Sender) *AuthService {
	return &AuthService{store: store, tokens: tokens, sender: sender}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	emailAddr := NormalizeEmail(req.Email)
	if len(emailAddr) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	if _, err := s.store.FindByEmail(emailAddr); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        emailAddr,
		Password:     string(hash),
		AuthProvider: "email",
		LastResetAt:  TodayUTC(),
	}

	if err := s.store.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.FindByEmail(req.Email)
	if err != nil {
		// Deliberately the same failure as a wrong password so the endpoint
		// cannot be used to enumerate accounts.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// RequestLoginCode emails a short-lived one-time code, creating a
// passwordless account on first contact (the "magic link" flow).
func (s *AuthService) RequestLoginCode(emailAddr string) error {
	emailAddr = NormalizeEmail(emailAddr)
	if emailAddr == "" {
		return errors.New("email is required")
	}

	user, err := s.store.FindByEmail(emailAddr)
	if err != nil {
		user = &models.User{
			ID:           uuid.New(),
			Email:        emailAddr,
			Password:     "",
			AuthProvider: "otp",
			LastResetAt:  TodayUTC(),
		}
		if err := s.store.Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	}

	code, err := generateLoginCode()
	if err != nil {
		return fmt.Errorf("failed to generate login code: %w", err)
	}

	expiresAt := time.Now().Add(loginCodeTTL)
	if err := s.store.SaveLoginCode(user.ID, hashLoginCode(code), expiresAt); err != nil {
		return fmt.Errorf("failed to store login code: %w", err)
	}

	if err := s.sender.SendLoginCode(emailAddr, code, expiresAt); err != nil {
		slog.Error("login code delivery failed", "error", err)
		return fmt.Errorf("failed to send login code: %w", err)
	}
	return nil
}

func (s *AuthService) VerifyLoginCode(emailAddr, code string) (*dto.AuthResponse, error) {
	user, err := s.store.FindByEmail(emailAddr)
	if err != nil {
		return nil, ErrInvalidCode
	}

	if user.OtpCodeHash == "" || user.OtpExpiresAt == nil || time.Now().After(*user.OtpExpiresAt) {
		return nil, ErrInvalidCode
	}

	expected := []byte(user.OtpCodeHash)
	if subtle.ConstantTimeCompare(expected, []byte(hashLoginCode(code))) != 1 {
		return nil, ErrInvalidCode
	}

	if err := s.store.ClearLoginCode(user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear login code: %w", err)
	}

	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthResponse{
		Status: "success",
		Token:  token,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			IsPremium: user.IsPremium,
		},
	}, nil
}

func generateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashLoginCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
