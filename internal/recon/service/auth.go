package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/internal/recon/store"
	"github.com/aussiebroadwan/recon/pkg/cryptox"
	"github.com/aussiebroadwan/recon/pkg/idx"
	"github.com/aussiebroadwan/recon/pkg/lockout"
	"github.com/aussiebroadwan/recon/pkg/slogx"
)

const (
	DefaultOTPTTL     = 10 * time.Minute
	MinPasswordLength = 8
)

// Notifier delivers one-time codes.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error
}

type AuthService struct {
	Store    store.Store
	Tokens   *TokenService
	Notifier Notifier
	Policy   lockout.Policy
	OTPTTL   time.Duration

	// RequireOTP gates token issuance behind a recent OTP verification.
	RequireOTP bool

	Now func() time.Time
}

// LoginResult is a successful login.
type LoginResult struct {
	User      domain.User
	Token     string
	ExpiresIn time.Duration
}

// Register creates an account. E-mail addresses are stored lower-cased.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if username == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now().UTC()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrAlreadyExists
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login checks credentials under the per-e-mail lockout policy.
//
// The attempt is counted as a failure before the password is looked at, in
// one immediate transaction with the lockout check; a correct password then
// resets the count. A blocked e-mail fails with *lockout.LockedOutError
// without a password check. An unknown e-mail or a wrong password keeps the
// failure; the one that reaches the threshold is returned as
// *lockout.LockedOutError.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	log := slogx.FromContext(ctx)

	v, err := s.reserveAttempt(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, rejected(ctx, v, ErrUserNotFound)
		}
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login rejected", "user_id", user.ID)
			return LoginResult{}, rejected(ctx, v, ErrInvalidCredentials)
		}
		return LoginResult{}, err
	}

	if err := s.guard(s.Store.LoginAttempts(), email).RecordSuccess(ctx); err != nil {
		return LoginResult{}, err
	}

	if s.RequireOTP {
		if !user.VerifiedSince(s.now().Add(-s.otpTTL())) {
			if err := s.SendOTP(ctx, email); err != nil {
				return LoginResult{}, err
			}
			return LoginResult{}, ErrOTPRequired
		}
		if err := s.Store.Users().ClearOTPVerification(ctx, user.ID); err != nil {
			return LoginResult{}, err
		}
	}

	token, ttl, err := s.Tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}

	log.Info("login succeeded", "user_id", user.ID)
	return LoginResult{User: user, Token: token, ExpiresIn: ttl}, nil
}

// reserveAttempt rejects a blocked e-mail and otherwise records a failure,
// returning the verdict after it. The transaction serialises concurrent
// logins for the same address.
func (s *AuthService) reserveAttempt(ctx context.Context, email string) (lockout.Verdict, error) {
	var v lockout.Verdict
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		guard := s.guard(tx.LoginAttempts(), email)
		if err := guard.Allow(ctx); err != nil {
			return err
		}

		var err error
		v, err = guard.RecordFailure(ctx)
		return err
	})
	return v, err
}

// rejected reports a failed attempt: cause, or *lockout.LockedOutError when
// this attempt's failure reached the threshold.
func rejected(ctx context.Context, v lockout.Verdict, cause error) error {
	if !v.Blocked {
		return cause
	}
	slogx.FromContext(ctx).Warn("login locked out",
		"failed_attempts", v.State.FailedAttempts,
		"blocked_until", v.State.BlockedUntil,
	)
	return &lockout.LockedOutError{Remaining: v.Remaining}
}

// SendOTP issues a new code for email, replacing any pending one, and hands
// it to the notifier. Only the code's fingerprint is stored.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.otpTTL())

	if err := s.Store.Users().SetOTP(ctx, user.ID, cryptox.FingerprintToken(code), expiresAt); err != nil {
		return err
	}

	if err := s.Notifier.SendOTP(ctx, user.Email, code, expiresAt); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	slogx.FromContext(ctx).Info("otp sent", "user_id", user.ID, "expires_at", expiresAt)
	return nil
}

// VerifyOTP checks code against the pending OTP. A correct code is consumed
// and the verification time recorded.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := s.now()
	if !user.HasPendingOTP() {
		// Housekeeping drops the fingerprint of an expired code but keeps
		// its expiry.
		if user.OTPExpiry != nil && now.After(*user.OTPExpiry) {
			return ErrOTPExpired
		}
		return ErrOTPMismatch
	}
	if !cryptox.MatchFingerprint(strings.TrimSpace(code), *user.OTPHash) {
		return ErrOTPMismatch
	}
	if now.After(*user.OTPExpiry) {
		return ErrOTPExpired
	}

	return s.Store.Users().ConsumeOTP(ctx, user.ID, now)
}

func (s *AuthService) guard(repo store.LoginAttempts, email string) *lockout.Guard {
	g := lockout.NewGuard(s.Policy, &attemptStore{
		repo:  repo,
		email: email,
		now:   s.now,
	})
	g.Now = s.now
	return g
}

func (s *AuthService) otpTTL() time.Duration {
	if s.OTPTTL <= 0 {
		return DefaultOTPTTL
	}
	return s.OTPTTL
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// attemptStore keeps the lockout state of one e-mail in login_attempts.
type attemptStore struct {
	repo  store.LoginAttempts
	email string
	now   func() time.Time
}

func (a *attemptStore) Load(ctx context.Context) (lockout.State, error) {
	row, err := a.repo.GetLoginAttempt(ctx, a.email)
	if errors.Is(err, store.ErrNotFound) {
		return lockout.State{}, nil
	}
	if err != nil {
		return lockout.State{}, err
	}
	return row.State(), nil
}

func (a *attemptStore) Save(ctx context.Context, s lockout.State) error {
	if s.IsZero() {
		return a.repo.DeleteLoginAttempt(ctx, a.email)
	}
	return a.repo.UpsertLoginAttempt(ctx, domain.NewLoginAttempt(a.email, s, a.now()))
}
