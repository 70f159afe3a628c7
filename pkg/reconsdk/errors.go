package reconsdk

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/lockout"
)

const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeUserNotFound        = "user_not_found"
	ErrorCodeAlreadyExists       = "already_exists"
	ErrorCodeLockedOut           = "locked_out"
	ErrorCodeOTPRequired         = "otp_required"
	ErrorCodeOTPMismatch         = "otp_mismatch"
	ErrorCodeOTPExpired          = "otp_expired"
	ErrorCodeMissingToken        = "missing_token"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeInvalidTarget       = "invalid_target"
	ErrorCodeInvalidCategory     = "invalid_category"
	ErrorCodeInvalidFilter       = "invalid_filter"
	ErrorCodeScanFailed          = "scan_failed"
	ErrorCodeUpstreamUnavailable = "upstream_unavailable"
	ErrorCodeRateLimited         = "rate_limit_exceeded"
	ErrorCodeServerError         = "server_error"
)

// APIError is the error body every recon endpoint returns. The server writes
// it with WriteError and the SDK parses responses back into it, so the same
// values can be compared with errors.Is on both sides.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches any *APIError with the same code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as the JSON error body.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// NewAPIError creates an error with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request body is malformed or missing required fields",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "Invalid password",
	}

	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "User not found",
	}

	ErrAlreadyExists = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeAlreadyExists,
		Description: "a user with this email or username already exists",
	}

	// ErrOTPRequired is returned by Login when the server requires a fresh
	// OTP verification. The server has already sent the code.
	ErrOTPRequired = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeOTPRequired,
		Description: "a one-time code has been sent, verify it and log in again",
	}

	ErrOTPMismatch = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOTPMismatch,
		Description: "Invalid OTP",
	}

	ErrOTPExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOTPExpired,
		Description: "OTP has expired",
	}

	ErrMissingToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingToken,
		Description: "Access token required",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidToken,
		Description: "Invalid or expired token",
	}

	ErrInvalidTarget = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidTarget,
		Description: "target is required",
	}

	ErrInvalidCategory = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCategory,
		Description: "unknown or mismatched scan category",
	}

	ErrInvalidFilter = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidFilter,
		Description: "unknown scanType or scanCategory filter value",
	}

	ErrUpstreamUnavailable = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeUpstreamUnavailable,
		Description: "Failed to process the link",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// WriteLockedOut writes the 429 response for a locked-out login, with the
// remaining block time in Retry-After (seconds) and retry_after_ms.
func WriteLockedOut(w http.ResponseWriter, remaining time.Duration) {
	secs := int(math.Ceil(remaining.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	httpx.WriteJSON(w, http.StatusTooManyRequests, ErrorResponse{
		Error:            ErrorCodeLockedOut,
		ErrorDescription: (&lockout.LockedOutError{Remaining: remaining}).Error(),
		RetryAfterMS:     remaining.Milliseconds(),
	})
}

// parseErrorResponse turns a non-success response into a typed error:
// *lockout.LockedOutError for locked_out, *APIError otherwise.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		if errResp.Error == ErrorCodeLockedOut {
			remaining := time.Duration(errResp.RetryAfterMS) * time.Millisecond
			if remaining <= 0 {
				remaining = retryAfter(resp)
			}
			return &lockout.LockedOutError{Remaining: remaining}
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
