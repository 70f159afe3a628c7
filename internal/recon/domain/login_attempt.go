package domain

import (
	"time"

	"github.com/aussiebroadwan/recon/pkg/lockout"
)

// LoginAttempt is the server-side lockout state for one e-mail address.
type LoginAttempt struct {
	Email          string
	FailedAttempts int
	BlockedUntil   *time.Time
	UpdatedAt      time.Time
}

// State converts the row into the lockout state machine's representation.
func (a LoginAttempt) State() lockout.State {
	s := lockout.State{FailedAttempts: a.FailedAttempts}
	if a.BlockedUntil != nil {
		s.BlockedUntil = *a.BlockedUntil
	}
	return s
}

// NewLoginAttempt builds the row for email from a lockout state.
func NewLoginAttempt(email string, s lockout.State, now time.Time) LoginAttempt {
	a := LoginAttempt{Email: email, FailedAttempts: s.FailedAttempts, UpdatedAt: now}
	if !s.BlockedUntil.IsZero() {
		until := s.BlockedUntil
		a.BlockedUntil = &until
	}
	return a
}
