package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, start.AddDate(0, 1, 0), periodEnd(start, "monthly"))
	assert.Equal(t, start.AddDate(0, 1, 0), periodEnd(start, ""))
	assert.Equal(t, start.AddDate(0, 0, 7), periodEnd(start, "weekly"))
	assert.Equal(t, start.AddDate(1, 0, 0), periodEnd(start, "annually"))
	assert.Equal(t, start.AddDate(1, 0, 0), periodEnd(start, "yearly"))
}

func TestHandleWebhookEventIgnoresUnknown(t *testing.T) {
	s := NewSubscriptionService(nil)
	assert.NoError(t, s.HandleWebhookEvent("invoice.create", nil))
}
