// Package email sends the one-time login codes for passwordless sign-in.
package email

import (
	"errors"
	"time"
)

// Sender delivers a login code to a student's inbox.
type Sender interface {
	SendLoginCode(toEmail string, code string, expiresAt time.Time) error
}

type disabledSender struct {
	reason string
}

// NewDisabledSender returns a Sender that always fails. Used when SMTP is
// not configured so the code-login endpoints degrade instead of panicking.
func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendLoginCode(_ string, _ string, _ time.Time) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
