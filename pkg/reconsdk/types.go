package reconsdk

import (
	"encoding/json"
	"time"
)

// Scan categories, one per scan-engine endpoint.
const (
	CategorySocial    = "social"
	CategoryShodan    = "shodan"
	CategoryPasswords = "passwords"
	CategoryCrawl     = "crawl"
	CategoryWeb       = "web"
)

// Scan types. Every scan submitted through recon is active; passive exists
// for records written by other tools.
const (
	ScanTypeActive  = "active"
	ScanTypePassive = "passive"
)

// Categories lists the scan categories in route order.
var Categories = []string{CategorySocial, CategoryShodan, CategoryPasswords, CategoryCrawl, CategoryWeb}

// ScanPath returns the server route that submits scans of category.
func ScanPath(category string) string {
	if category == CategorySocial || category == "" {
		return "/process-link"
	}
	return "/process-link-" + category
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`

	// RetryAfterMS is only set on locked_out responses.
	RetryAfterMS int64 `json:"retry_after_ms,omitempty"`
}

// MessageResponse is returned by endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Account
// ============================================================================

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an account. The password hash and OTP fields
// never leave the server.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	Success bool `json:"success"`
}

// ============================================================================
// Scans and logs
// ============================================================================

// ScanRequest submits a target. ScanCategory is optional: on /process-link
// it selects the category, on the suffixed routes it must match the route.
type ScanRequest struct {
	Target       string `json:"target"`
	ScanCategory string `json:"scanCategory,omitempty"`
}

// ScanRecord is a persisted scan result.
type ScanRecord struct {
	ID           string          `json:"id"`
	URLOrIP      string          `json:"url_or_ip"`
	ScanType     string          `json:"scan_type"`
	ScanCategory string          `json:"scan_category"`
	ScanResults  json.RawMessage `json:"scan_results"`
	UserID       string          `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ScanResponse struct {
	Message         string          `json:"message"`
	FastAPIResponse json.RawMessage `json:"fastapi_response"`
	SavedScan       ScanRecord      `json:"savedScan"`
}

// ScanFilter narrows ListScans. Empty fields match everything.
type ScanFilter struct {
	ScanType     string
	ScanCategory string
}

type ScansResponse struct {
	Message string       `json:"message"`
	Scans   []ScanRecord `json:"scans"`
}

type LogEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
}

type LogsResponse struct {
	Message string     `json:"message"`
	Logs    []LogEntry `json:"logs"`
}

type AppendLogRequest struct {
	Action string `json:"action"`
}

type AppendLogResponse struct {
	Message string   `json:"message"`
	Log     LogEntry `json:"log"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only present on
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Engine   string `json:"engine"`
}
