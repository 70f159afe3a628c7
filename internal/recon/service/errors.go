package service

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid_request")
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrUserNotFound        = errors.New("user_not_found")
	ErrAlreadyExists       = errors.New("already_exists")
	ErrOTPRequired         = errors.New("otp_required")
	ErrOTPMismatch         = errors.New("otp_mismatch")
	ErrOTPExpired          = errors.New("otp_expired")
	ErrInvalidTarget       = errors.New("invalid_target")
	ErrInvalidCategory     = errors.New("invalid_category")
	ErrInvalidFilter       = errors.New("invalid_filter")
	ErrUpstreamUnavailable = errors.New("upstream_unavailable")
	ErrPersistence         = errors.New("persistence_error")
)
