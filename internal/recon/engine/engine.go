// Package engine talks to the external scan engine (scan-controller), a
// FastAPI service with one endpoint per scan category.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/pkg/slogx"
)

// maxResponseSize bounds how much of an engine response is read. ZAP
// reports for large sites run to several megabytes.
const maxResponseSize = 32 << 20

// ErrUnavailable wraps transport failures, non-2xx answers and bodies that
// are not JSON. It is never retried.
var ErrUnavailable = errors.New("engine: unavailable")

// ScanError is a 2xx answer whose body reports a failure in an "error" field.
type ScanError struct {
	Reason string
}

func (e *ScanError) Error() string {
	return "engine: scan failed: " + e.Reason
}

// Route is the engine endpoint for a category.
type Route struct {
	Method string
	Path   string
}

var routes = map[domain.ScanCategory]Route{
	domain.CategorySocial:    {http.MethodPost, "/socials"},
	domain.CategoryShodan:    {http.MethodGet, "/osint"}, // GET with a JSON body
	domain.CategoryPasswords: {http.MethodPost, "/passwords"},
	domain.CategoryCrawl:     {http.MethodPost, "/crawl"},
	domain.CategoryWeb:       {http.MethodPost, "/web-scan"},
}

// RouteFor returns the endpoint that serves category c.
func RouteFor(c domain.ScanCategory) (Route, bool) {
	r, ok := routes[c]
	return r, ok
}

// Result is a clean engine answer.
type Result struct {
	Payload domain.ScanPayload
	Raw     json.RawMessage
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client. timeout bounds a whole scan; active scans
// such as crawl and web-scan routinely take minutes.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type targetRequest struct {
	Target string `json:"target"`
}

// Scan submits target to the endpoint for category and parses the answer.
// Errors are ErrUnavailable (wrapped) or *ScanError.
func (c *Client) Scan(ctx context.Context, category domain.ScanCategory, target string) (Result, error) {
	route, ok := RouteFor(category)
	if !ok {
		return Result{}, fmt.Errorf("engine: no route for category %q", category)
	}

	body, err := json.Marshal(targetRequest{Target: target})
	if err != nil {
		return Result{}, err
	}

	log := slogx.FromContext(ctx).With("category", category, "engine_path", route.Path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, route.Method, c.BaseURL+route.Path, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn("engine request failed", "err", err)
		return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	log.Debug("engine responded", "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	return Parse(category, raw)
}

// Health calls the engine's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil || health.Status != "ok" {
		return fmt.Errorf("%w: unhealthy", ErrUnavailable)
	}
	return nil
}
