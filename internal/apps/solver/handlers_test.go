package solver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/edupadihq/edupadi-backend/internal/dto"
	"github.com/edupadihq/edupadi-backend/internal/email"
	"github.com/edupadihq/edupadi-backend/internal/handlers"
	"github.com/edupadihq/edupadi-backend/internal/middleware"
	"github.com/edupadihq/edupadi-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the auth endpoints and the solver behind the real auth
// gate, with in-memory storage and a stub AI provider.
func newTestApp(t *testing.T, limit int) (*fiber.App, *stubProvider) {
	t.Helper()

	store := newMemUserStore()
	tokens := services.NewTokenService(&config.Config{
		JWTSecret: "test-secret-at-least-32-characters",
		JWTExpiry: time.Hour,
	})
	authService := services.NewAuthService(store, tokens, email.NewDisabledSender("test"))
	authHandler := handlers.NewAuthHandler(authService)

	provider := &stubProvider{}
	solveService := NewSolveService(&memRecords{}, services.NewQuotaService(store, limit), provider)
	solveHandler := NewSolveHandler(solveService)

	app := fiber.New()
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)

	gate := middleware.Protected(tokens, store)
	app.Post("/api/solve", gate, solveHandler.Solve)
	app.Get("/api/solver/usage", gate, solveHandler.Usage)
	app.Get("/api/solver/history", gate, solveHandler.History)

	return app, provider
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func registerUser(t *testing.T, app *fiber.App, emailAddr string) string {
	t.Helper()

	resp, raw := doJSON(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Email:    emailAddr,
		Password: "correct-horse",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &auth))
	require.Equal(t, "success", auth.Status)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestSolveEndpointEnforcesDailyLimit(t *testing.T) {
	app, _ := newTestApp(t, 3)
	token := registerUser(t, app, "student@example.com")

	for want := 1; want <= 3; want++ {
		resp, raw := doJSON(t, app, "POST", "/api/solve", token, SolveRequest{
			QuestionText: "What is 6 x 7?",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

		var body SolveResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "The answer is 42.", body.Answer)
		assert.Equal(t, want, body.Count)
		assert.Equal(t, 3, body.Limit)
		assert.False(t, body.IsPremium)
	}

	resp, raw := doJSON(t, app, "POST", "/api/solve", token, SolveRequest{
		QuestionText: "One more?",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode, string(raw))

	var denied QuotaExceededResponse
	require.NoError(t, json.Unmarshal(raw, &denied))
	assert.True(t, denied.LimitReached)
	assert.Equal(t, 3, denied.Count)
	assert.Equal(t, 3, denied.Limit)
	assert.NotEmpty(t, denied.Error)
}

func TestSolveEndpointRequiresToken(t *testing.T) {
	app, provider := newTestApp(t, 3)

	resp, _ := doJSON(t, app, "POST", "/api/solve", "", SolveRequest{QuestionText: "hi"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/solve", "not-a-real-token", SolveRequest{QuestionText: "hi"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, 0, provider.calls)
}

func TestSolveEndpointRejectsEmptyQuestion(t *testing.T) {
	app, provider := newTestApp(t, 3)
	token := registerUser(t, app, "student@example.com")

	resp, raw := doJSON(t, app, "POST", "/api/solve", token, SolveRequest{QuestionText: ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Equal(t, 0, provider.calls)
}

func TestSolveEndpointProviderFailure(t *testing.T) {
	app, provider := newTestApp(t, 3)
	token := registerUser(t, app, "student@example.com")
	provider.broken = true

	resp, _ := doJSON(t, app, "POST", "/api/solve", token, SolveRequest{QuestionText: "hi"})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// The failed call costs nothing; usage still reads zero.
	resp, raw := doJSON(t, app, "GET", "/api/solver/usage", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var usage UsageResponse
	require.NoError(t, json.Unmarshal(raw, &usage))
	assert.Equal(t, 0, usage.Count)
	assert.Equal(t, 3, usage.Limit)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t, 3)
	registerUser(t, app, "student@example.com")

	resp, _ := doJSON(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{
		Email: "student@example.com", Password: "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{
		Email: "nobody@example.com", Password: "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterEndpointRejectsDuplicate(t *testing.T) {
	app, _ := newTestApp(t, 3)
	registerUser(t, app, "student@example.com")

	resp, raw := doJSON(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Email:    "Student@Example.com",
		Password: "another-pass",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))
}
