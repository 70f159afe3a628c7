package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/recon/internal/recon/engine"
	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/pkg/lockout"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
	"github.com/aussiebroadwan/recon/pkg/slogx"
)

const maxBodySize = 1 << 20

// writeServiceError maps a service error onto the API error table. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var locked *lockout.LockedOutError
	if errors.As(err, &locked) {
		reconsdk.WriteLockedOut(w, locked.Remaining)
		return
	}

	var scanErr *engine.ScanError
	if errors.As(err, &scanErr) {
		reconsdk.NewAPIError(http.StatusBadRequest, reconsdk.ErrorCodeScanFailed, scanErr.Reason).WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		reconsdk.NewAPIError(http.StatusBadRequest, reconsdk.ErrorCodeInvalidRequest, describe(err)).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		reconsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		reconsdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrAlreadyExists):
		reconsdk.ErrAlreadyExists.WriteError(w)
	case errors.Is(err, service.ErrOTPRequired):
		reconsdk.ErrOTPRequired.WriteError(w)
	case errors.Is(err, service.ErrOTPMismatch):
		reconsdk.ErrOTPMismatch.WriteError(w)
	case errors.Is(err, service.ErrOTPExpired):
		reconsdk.ErrOTPExpired.WriteError(w)
	case errors.Is(err, service.ErrInvalidTarget):
		reconsdk.ErrInvalidTarget.WriteError(w)
	case errors.Is(err, service.ErrInvalidCategory):
		reconsdk.ErrInvalidCategory.WriteError(w)
	case errors.Is(err, service.ErrInvalidFilter):
		reconsdk.ErrInvalidFilter.WriteError(w)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		reconsdk.ErrUpstreamUnavailable.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		reconsdk.ErrServerError.WriteError(w)
	}
}

// describe strips the sentinel prefix from a wrapped validation error.
func describe(err error) string {
	if msg, ok := strings.CutPrefix(err.Error(), service.ErrInvalidInput.Error()+": "); ok && msg != "" {
		return msg
	}
	return reconsdk.ErrInvalidRequest.Description
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
