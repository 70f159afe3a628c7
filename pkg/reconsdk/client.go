package reconsdk

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/recon/pkg/lockout"
)

// Client talks to a recon server. It provides the unauthenticated
// operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Guard, when set, enforces the login lockout on this device before the
	// server is contacted. Failed logins are recorded in it and a server-side
	// lockout is copied into it.
	Guard *lockout.Guard
}

// NewClient creates a client with a timeout long enough for a full scan.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 6 * time.Minute,
		},
	}
}

// NewSession wraps an existing bearer token, e.g. one loaded from disk.
// A zero expiresAt means the expiry is unknown.
func (c *Client) NewSession(token string, expiresAt time.Time) *Session {
	return &Session{client: c, token: token, expiresAt: expiresAt}
}
