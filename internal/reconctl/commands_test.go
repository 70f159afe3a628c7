package reconctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/recon/pkg/lockout"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "correct-horse"
	testToken    = "token-123"
)

// fakeServer answers the recon routes the CLI uses.
type fakeServer struct {
	*httptest.Server
	requireOTP bool
	scanQuery  string
	lastScan   reconsdk.ScanRequest
	lastAction string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		var req reconsdk.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusCreated, reconsdk.RegisterResponse{
			Message: "User registered successfully",
			User:    reconsdk.User{ID: "u1", Username: req.Username, Email: req.Email},
		})
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req reconsdk.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch {
		case req.Password != testPassword:
			reconsdk.ErrInvalidCredentials.WriteError(w)
		case f.requireOTP:
			reconsdk.ErrOTPRequired.WriteError(w)
		default:
			writeJSON(w, http.StatusOK, reconsdk.LoginResponse{Message: "Login successful", Token: testToken, ExpiresIn: 3600})
		}
	})
	mux.HandleFunc("POST /verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req reconsdk.VerifyOTPRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.OTP != "123456" {
			reconsdk.ErrOTPMismatch.WriteError(w)
			return
		}
		writeJSON(w, http.StatusOK, reconsdk.VerifyOTPResponse{Success: true})
	})
	mux.HandleFunc("POST /process-link-crawl", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&f.lastScan)
		raw := json.RawMessage(`{"endpoints":["/","/login"],"robots_txt":[{"Disallow":["/admin"]}]}`)
		writeJSON(w, http.StatusOK, reconsdk.ScanResponse{
			Message:         "Processed link: " + f.lastScan.Target,
			FastAPIResponse: raw,
			SavedScan: reconsdk.ScanRecord{
				ID: "s1", URLOrIP: f.lastScan.Target, ScanType: "active",
				ScanCategory: "crawl", ScanResults: raw,
			},
		})
	})
	mux.HandleFunc("GET /scans", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.scanQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, reconsdk.ScansResponse{
			Message: "Scans retrieved successfully",
			Scans: []reconsdk.ScanRecord{{
				ID: "s1", URLOrIP: "203.0.113.7", ScanType: "passive",
				ScanCategory: "shodan", ScanResults: json.RawMessage(`{"ip":"203.0.113.7","ports":[22,443]}`),
			}},
		})
	})
	mux.HandleFunc("POST /log", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var req reconsdk.AppendLogRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.lastAction = req.Action
		writeJSON(w, http.StatusCreated, reconsdk.AppendLogResponse{
			Message: "Log saved successfully",
			Log:     reconsdk.LogEntry{ID: "l1", Action: req.Action},
		})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		reconsdk.ErrInvalidToken.WriteError(w)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	srv *fakeServer
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{srv: newFakeServer(t), dir: t.TempDir()}
}

// run executes reconctl with args against the fake server and returns
// everything it printed.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	cmd.Reader = strings.NewReader("")

	argv := append([]string{
		"reconctl",
		"--config", filepath.Join(h.dir, "config.toml"),
		"--server", h.srv.URL,
		"--state-dir", h.dir,
	}, args...)

	err := cmd.Run(context.Background(), argv)
	return out.String(), err
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.run(t, "login", "-e", testEmail, "--password", testPassword)
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "register", "-u", "ada", "-e", testEmail, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "User registered successfully: ada <ada@example.com>")
}

func TestLogin_SavesSession(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "login", "-e", testEmail, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as "+testEmail)

	s, err := loadSession(filepath.Join(h.dir, "session.toml"))
	require.NoError(t, err)
	assert.Equal(t, testToken, s.Token)
	assert.Equal(t, h.srv.URL, s.Server)
	assert.False(t, s.ExpiresAt.IsZero())
}

func TestLogin_PasswordFromInput(t *testing.T) {
	h := newHarness(t)

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.Writer = &out
	cmd.Reader = strings.NewReader(testPassword + "\n")

	err := cmd.Run(context.Background(), []string{
		"reconctl", "--config", filepath.Join(h.dir, "config.toml"),
		"--server", h.srv.URL, "--state-dir", h.dir,
		"login", "-e", testEmail,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Password: ")
	assert.Contains(t, out.String(), "Logged in as")
}

func TestLogin_LocksOutAfterThreeFailures(t *testing.T) {
	h := newHarness(t)

	for range 2 {
		_, err := h.run(t, "login", "-e", testEmail, "--password", "wrong")
		require.ErrorIs(t, err, reconsdk.ErrInvalidCredentials)
	}

	_, err := h.run(t, "login", "-e", testEmail, "--password", "wrong")
	var locked *lockout.LockedOutError
	require.ErrorAs(t, err, &locked)
	assert.Contains(t, err.Error(), "status --watch")

	_, statErr := os.Stat(filepath.Join(h.dir, "lockout.toml"))
	require.NoError(t, statErr)

	// The block holds even with the right password.
	_, err = h.run(t, "login", "-e", testEmail, "--password", testPassword)
	require.ErrorIs(t, err, lockout.ErrLockedOut)

	out, err := h.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Session: none")
	assert.Contains(t, out, "Lockout: blocked for")
}

func TestLogin_OTPRequired(t *testing.T) {
	h := newHarness(t)
	h.srv.requireOTP = true

	out, err := h.run(t, "login", "-e", testEmail, "--password", testPassword)
	require.ErrorIs(t, err, reconsdk.ErrOTPRequired)
	assert.Contains(t, out, "A one-time code was sent to "+testEmail)

	out, err = h.run(t, "verify-otp", "-e", testEmail, "123456")
	require.NoError(t, err)
	assert.Contains(t, out, "Code verified")

	_, err = h.run(t, "verify-otp", "-e", testEmail, "000000")
	require.ErrorIs(t, err, reconsdk.ErrOTPMismatch)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = h.run(t, "scans")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestScan(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "scan", "--category", "crawl", "example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Processed link: example.com")
	assert.Contains(t, out, "id:      s1")
	assert.Contains(t, out, "2 endpoints, 1 disallowed paths")
	assert.Equal(t, "crawl", h.srv.lastScan.ScanCategory)
}

func TestScan_JSON(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "scan", "-t", "crawl", "--json", "example.com")
	require.NoError(t, err)

	var payload struct {
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, []string{"/", "/login"}, payload.Endpoints)
}

func TestScan_Validation(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.run(t, "scan")
	require.Error(t, err)

	_, err = h.run(t, "scan", "--category", "nmap", "example.com")
	require.ErrorContains(t, err, `unknown category "nmap"`)
}

func TestScan_NotLoggedIn(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "scan", "example.com")
	require.True(t, errors.Is(err, errNotLoggedIn))
}

func TestScan_SessionForOtherServer(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, saveSession(filepath.Join(h.dir, "session.toml"), savedSession{
		Server: "http://elsewhere", Email: testEmail, Token: testToken,
	}))

	_, err := h.run(t, "scan", "example.com")
	require.ErrorContains(t, err, "saved session is for http://elsewhere")
}

func TestScans_Table(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "scans", "--type", "passive", "--category", "shodan")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "203.0.113.7")
	assert.Contains(t, out, "2 open ports")
	assert.Contains(t, h.srv.scanQuery, "scanType=passive")
	assert.Contains(t, h.srv.scanQuery, "scanCategory=shodan")
}

func TestLogsAdd(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "logs", "add", "reviewed", "results")
	require.NoError(t, err)
	assert.Contains(t, out, `Logged "reviewed results"`)
	assert.Equal(t, "reviewed results", h.srv.lastAction)
}

func TestStatus_LoggedIn(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Session: "+testEmail)
	assert.Contains(t, out, "(valid)")
	assert.Contains(t, out, "Lockout: none (0 failed attempts)")
}

func TestStatus_WatchCountdown(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "lockout.toml")

	fs := &lockout.FileStore{Path: path}
	require.NoError(t, fs.Save(context.Background(), lockout.State{
		FailedAttempts: lockout.MaxAttempts,
		BlockedUntil:   time.Now().Add(300 * time.Millisecond),
	}))

	out, err := h.run(t, "status", "--watch", "--interval", "50ms")
	require.NoError(t, err)
	assert.Contains(t, out, "remaining")
	assert.Contains(t, out, "Lockout: expired, you can log in again")

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	out, err = h.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Lockout: none (0 failed attempts)")
}
