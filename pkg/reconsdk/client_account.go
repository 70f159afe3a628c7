package reconsdk

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/recon/pkg/lockout"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/register", req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a Session.
//
// With a Guard configured, a blocked device fails with *lockout.LockedOutError
// without contacting the server. Wrong passwords and unknown e-mails count
// as failures; the failure that reaches the threshold is reported as
// *lockout.LockedOutError instead of the server's error. A locked_out answer
// from the server is copied into the Guard.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if c.Guard != nil {
		if err := c.Guard.Allow(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, c.loginFailed(ctx, err)
	}

	if c.Guard != nil {
		if err := c.Guard.RecordSuccess(ctx); err != nil {
			return nil, err
		}
	}

	var expiresAt time.Time
	if out.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	return c.NewSession(out.Token, expiresAt), nil
}

func (c *Client) loginFailed(ctx context.Context, err error) error {
	if c.Guard == nil {
		return err
	}

	var locked *lockout.LockedOutError
	if errors.As(err, &locked) {
		if gerr := c.Guard.BlockFor(ctx, locked.Remaining); gerr != nil {
			return errors.Join(err, gerr)
		}
		return err
	}

	if !errors.Is(err, ErrInvalidCredentials) && !errors.Is(err, ErrUserNotFound) {
		return err
	}

	v, gerr := c.Guard.RecordFailure(ctx)
	if gerr != nil {
		return errors.Join(err, gerr)
	}
	if v.Blocked {
		return &lockout.LockedOutError{Remaining: v.Remaining}
	}
	return err
}

// SendOTP asks the server to e-mail a fresh one-time code.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/send-otp", SendOTPRequest{Email: email})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// VerifyOTP checks a one-time code. A wrong or expired code returns
// ErrOTPMismatch or ErrOTPExpired.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/verify-otp", VerifyOTPRequest{Email: email, OTP: code})
	if err != nil {
		return err
	}

	var out VerifyOTPResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return err
	}
	if !out.Success {
		return ErrOTPMismatch
	}
	return nil
}
