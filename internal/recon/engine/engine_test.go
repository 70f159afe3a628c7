package engine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

func TestRouteFor(t *testing.T) {
	t.Parallel()

	want := map[domain.ScanCategory]Route{
		domain.CategorySocial:    {http.MethodPost, "/socials"},
		domain.CategoryShodan:    {http.MethodGet, "/osint"},
		domain.CategoryPasswords: {http.MethodPost, "/passwords"},
		domain.CategoryCrawl:     {http.MethodPost, "/crawl"},
		domain.CategoryWeb:       {http.MethodPost, "/web-scan"},
	}
	for c, r := range want {
		got, ok := RouteFor(c)
		require.True(t, ok, c)
		require.Equal(t, r, got, c)
	}

	_, ok := RouteFor("nessus")
	require.False(t, ok)
}

func TestClient_ScanSendsTargetToCategoryRoute(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var gotBody targetRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"1.2.3.4","ports":[80]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/", time.Second)
	res, err := c.Scan(context.Background(), domain.CategoryShodan, "1.2.3.4")
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, "/osint", gotPath)
	require.Equal(t, "1.2.3.4", gotBody.Target)

	p, ok := res.Payload.(*domain.ShodanPayload)
	require.True(t, ok)
	require.Equal(t, []int{80}, p.Ports)
	require.JSONEq(t, `{"ip":"1.2.3.4","ports":[80]}`, string(res.Raw))
}

func TestClient_ScanUpstreamFailures(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"crawler crashed"}`, http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(srv.URL, time.Second).Scan(context.Background(), domain.CategoryCrawl, "example.com")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, time.Second).Scan(context.Background(), domain.CategoryCrawl, "example.com")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(srv.URL, 20*time.Millisecond).Scan(context.Background(), domain.CategoryWeb, "example.com")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestClient_ScanEmbeddedError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, time.Second).Scan(context.Background(), domain.CategorySocial, "example.com")
	var scanErr *ScanError
	require.True(t, errors.As(err, &scanErr))
	require.Equal(t, "Invalid API key", scanErr.Reason)
	require.False(t, errors.Is(err, ErrUnavailable))
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("numeric error with message", func(t *testing.T) {
		_, err := Parse(domain.CategoryPasswords, []byte(`{"error":401,"message":"Unauthorized"}`))
		var scanErr *ScanError
		require.True(t, errors.As(err, &scanErr))
		require.Equal(t, "401: Unauthorized", scanErr.Reason)
	})

	t.Run("null or empty error is clean", func(t *testing.T) {
		for _, body := range []string{`{"error":null,"entries":[]}`, `{"error":"","entries":[]}`} {
			res, err := Parse(domain.CategoryPasswords, []byte(body))
			require.NoError(t, err, body)
			require.Equal(t, domain.CategoryPasswords, res.Payload.Category())
		}
	})

	t.Run("string wrapped ZAP report", func(t *testing.T) {
		report := `{"@version":"2.14.0","site":[{"@name":"https://example.com","alerts":[{"riskcode":"2"}]}]}`
		wrapped, err := json.Marshal(report)
		require.NoError(t, err)

		res, err := Parse(domain.CategoryWeb, wrapped)
		require.NoError(t, err)
		p, ok := res.Payload.(*domain.WebPayload)
		require.True(t, ok)
		require.Len(t, p.Sites, 1)
		require.JSONEq(t, report, string(res.Raw))
	})

	t.Run("shodan without data is not an error", func(t *testing.T) {
		res, err := Parse(domain.CategoryShodan, []byte(`{"message":"No vulnerabilities found for this IP address."}`))
		require.NoError(t, err)
		require.Equal(t, "No vulnerabilities found for this IP address.", res.Payload.Summary())
	})

	t.Run("non JSON body", func(t *testing.T) {
		_, err := Parse(domain.CategoryCrawl, []byte(`<html>oops</html>`))
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("array body", func(t *testing.T) {
		res, err := Parse(domain.CategoryCrawl, []byte(`[1,2]`))
		require.NoError(t, err)
		_, raw := res.Payload.(domain.RawPayload)
		require.True(t, raw)
	})
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(healthy.Close)
	require.NoError(t, NewClient(healthy.URL, time.Second).Health(context.Background()))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(broken.Close)
	require.ErrorIs(t, NewClient(broken.URL, time.Second).Health(context.Background()), ErrUnavailable)
}
