package reconsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session carries a bearer token. Tokens are not refreshed; once Expired
// reports true the caller has to Login again.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns the token expiry, or the zero time if unknown.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the token is known to have expired.
func (s *Session) Expired() bool {
	return !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt)
}

// SubmitScan sends target to the route of category and returns the engine
// payload together with the saved record. An engine-reported failure comes
// back as an *APIError with code scan_failed.
func (s *Session) SubmitScan(ctx context.Context, target, category string) (*ScanResponse, error) {
	req := ScanRequest{Target: target, ScanCategory: category}
	resp, err := s.doAuthRequest(ctx, http.MethodPost, ScanPath(category), req)
	if err != nil {
		return nil, err
	}

	var out ScanResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListScans returns saved scans, newest first.
func (s *Session) ListScans(ctx context.Context, filter ScanFilter) ([]ScanRecord, error) {
	q := url.Values{}
	if filter.ScanType != "" {
		q.Set("scanType", filter.ScanType)
	}
	if filter.ScanCategory != "" {
		q.Set("scanCategory", filter.ScanCategory)
	}
	path := "/scans"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out ScansResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Scans, nil
}

// ListLogs returns the activity log, newest first.
func (s *Session) ListLogs(ctx context.Context) ([]LogEntry, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/log", nil)
	if err != nil {
		return nil, err
	}

	var out LogsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Logs, nil
}

// AppendLog records an action in the activity log.
func (s *Session) AppendLog(ctx context.Context, action string) (*LogEntry, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/log", AppendLogRequest{Action: action})
	if err != nil {
		return nil, err
	}

	var out AppendLogResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Log, nil
}
