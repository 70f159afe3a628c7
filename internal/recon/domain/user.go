package domain

import "time"

type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string     // argon2id PHC string
	OTPHash       *string    // SHA-256 fingerprint of the pending OTP (nullable)
	OTPExpiry     *time.Time // nullable
	OTPVerifiedAt *time.Time // set by a successful OTP verification (nullable)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPendingOTP reports whether an OTP has been issued and not yet consumed.
func (u User) HasPendingOTP() bool {
	return u.OTPHash != nil && u.OTPExpiry != nil
}

// VerifiedSince reports whether the user verified an OTP at or after t.
func (u User) VerifiedSince(t time.Time) bool {
	return u.OTPVerifiedAt != nil && !u.OTPVerifiedAt.Before(t)
}
