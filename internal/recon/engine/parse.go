package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

// Parse interprets a 2xx engine body for category.
//
// A body that is a JSON string holding a JSON document (how the engine
// returns ZAP reports) is unwrapped first. An object with a non-empty
// "error" field is a *ScanError; anything else decodes into the category's
// payload type, falling back to domain.RawPayload.
func Parse(category domain.ScanCategory, body []byte) (Result, error) {
	raw := unwrap(bytes.TrimSpace(body))
	if !json.Valid(raw) {
		return Result{}, fmt.Errorf("%w: response is not JSON", ErrUnavailable)
	}

	if err := embeddedError(raw); err != nil {
		return Result{}, err
	}

	return Result{
		Payload: domain.DecodePayload(category, raw),
		Raw:     json.RawMessage(raw),
	}, nil
}

func unwrap(raw []byte) []byte {
	if len(raw) == 0 || raw[0] != '"' {
		return raw
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return raw
	}
	trimmed := strings.TrimSpace(inner)
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)) {
		return []byte(trimmed)
	}
	return raw
}

// embeddedError returns a *ScanError when raw is an object whose "error"
// field is set. null, false and "" do not count.
func embeddedError(raw []byte) error {
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}

	switch strings.TrimSpace(string(envelope.Error)) {
	case "", "null", "false", `""`:
		return nil
	}

	var reason string
	if err := json.Unmarshal(envelope.Error, &reason); err != nil || reason == "" {
		// e.g. {"error": 401, "message": "..."} from a failing upstream API
		reason = string(envelope.Error)
		var msg string
		if json.Unmarshal(envelope.Message, &msg) == nil && msg != "" {
			reason = fmt.Sprintf("%s: %s", reason, msg)
		}
	}
	return &ScanError{Reason: reason}
}
