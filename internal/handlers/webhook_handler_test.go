package handlers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edupadihq/edupadi-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaystackSignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	secret := "sk_test_secret"

	assert.True(t, verifyPaystackSignature(body, signBody(body, secret), secret))

	assert.False(t, verifyPaystackSignature(body, "", secret))
	assert.False(t, verifyPaystackSignature(body, signBody(body, "wrong-secret"), secret))
	assert.False(t, verifyPaystackSignature([]byte(`{"event":"tampered"}`), signBody(body, secret), secret))
}

func newWebhookApp(secret string) *fiber.App {
	handler := NewWebhookHandler(nil, &config.Config{PaystackSecret: secret})
	app := fiber.New()
	app.Post("/api/webhooks/paystack", handler.HandlePaystack)
	return app
}

func TestHandlePaystackWithoutSecretIs404(t *testing.T) {
	app := newWebhookApp("")

	req := httptest.NewRequest("POST", "/api/webhooks/paystack", strings.NewReader("{}"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandlePaystackRejectsBadSignature(t *testing.T) {
	app := newWebhookApp("sk_test_secret")

	body := `{"event":"charge.success"}`
	req := httptest.NewRequest("POST", "/api/webhooks/paystack", strings.NewReader(body))
	req.Header.Set("X-Paystack-Signature", signBody([]byte(body), "wrong-secret"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandlePaystackIgnoresUnknownEvents(t *testing.T) {
	app := newWebhookApp("sk_test_secret")

	// Unknown events are acknowledged without touching the service.
	body := `{"event":"invoice.create","data":{}}`
	req := httptest.NewRequest("POST", "/api/webhooks/paystack", strings.NewReader(body))
	req.Header.Set("X-Paystack-Signature", signBody([]byte(body), "sk_test_secret"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
