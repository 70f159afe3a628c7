//go:build e2e

package recon_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

/*
 * Container setup, a fake scan engine reachable from inside the container
 * and the account helpers shared by the recon end-to-end tests.
 */

const (
	testImageName = "recon-test:latest"

	testUsername = "ada"
	testPassword = "correct-horse-battery"
	jwtSecret    = "e2e-secret-0123456789abcdef012345"
)

// TestMain builds the image once for the whole package.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building recon Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up recon Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/recon/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// engineResponses are the canned bodies of the fake engine, keyed by route.
var engineResponses = map[string]string{
	"/socials":   `{"organization_info":{"name":"Example Org"},"employees":[]}`,
	"/osint":     `{"ip":"93.184.216.34","ports":[80,443],"vulnerabilities":[]}`,
	"/passwords": `[]`,
	"/crawl":     `{"error":"robots.txt unreachable"}`,
	"/web-scan":  `{"site":[]}`,
}

// startFakeEngine serves engineResponses on the host and returns its port.
func startFakeEngine(t *testing.T) int {
	t.Helper()

	mux := http.NewServeMux()
	for path, body := range engineResponses {
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	_, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	n, err := strconv.Atoi(port)
	require.NoError(t, err)
	return n
}

type reconContainer struct {
	baseURL   string
	container testcontainers.Container
}

// setupReconContainer starts recon wired to a fake engine on the host.
// Rate limits are raised so tests can make many rapid requests; extraEnv
// overrides any variable.
func setupReconContainer(t *testing.T, extraEnv map[string]string) *reconContainer {
	t.Helper()
	ctx := context.Background()

	enginePort := startFakeEngine(t)

	env := map[string]string{
		"ENV":                         "test",
		"LOG_LEVEL":                   "info",
		"LOG_FORMAT":                  "json",
		"RECON_DATABASE_FILE":         "/data/recon.db",
		"RECON_PEPPER_FILE":           "/data/pepper",
		"RECON_ALGORITHM":             "HS256",
		"JWT_SECRET":                  jwtSecret,
		"ENGINE_URL":                  fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, enginePort),
		"ENGINE_TIMEOUT":              "30s",
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:           testImageName,
		ExposedPorts:    []string{"8080/tcp"},
		Env:             env,
		HostAccessPorts: []int{enginePort},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &reconContainer{
		baseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
		container: container,
	}
}

func (c *reconContainer) client() *reconsdk.Client {
	return reconsdk.NewClient(c.baseURL)
}

// latestOTP reads the most recent code logged for email. Without SMTP the
// server writes codes to its log.
func (c *reconContainer) latestOTP(t *testing.T, email string) string {
	t.Helper()

	logs, err := c.container.Logs(t.Context())
	require.NoError(t, err)
	defer logs.Close()

	var code string
	sc := bufio.NewScanner(logs)
	for sc.Scan() {
		var line struct {
			Email string `json:"email"`
			OTP   string `json:"otp"`
		}
		raw := sc.Bytes()
		if i := bytes.IndexByte(raw, '{'); i >= 0 {
			raw = raw[i:]
		}
		if json.Unmarshal(raw, &line) == nil && line.Email == email && line.OTP != "" {
			code = line.OTP
		}
	}
	require.NotEmpty(t, code, "no otp logged for %s", email)
	return code
}

// registerAndLogin creates an account for email and returns its session.
func registerAndLogin(t *testing.T, client *reconsdk.Client, email string) *reconsdk.Session {
	t.Helper()

	_, err := client.Register(t.Context(), reconsdk.RegisterRequest{
		Username: testUsername,
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err, "Register should succeed")

	session, err := client.Login(t.Context(), email, testPassword)
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, session.Token())
	return session
}
