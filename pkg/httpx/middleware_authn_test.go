package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthnMiddleware(t *testing.T) {
	secret := []byte(strings.Repeat("k", 32))
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	var gotUser, gotEmail string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = httpx.UserID(r.Context())
		gotEmail, _ = r.Context().Value(httpx.CtxKeyEmail).(string)
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(jwtx.NewVerifierHS256(secret, "recon")))

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/scans", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing token is 401", func(t *testing.T) {
		rec := do("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Access token required")
	})

	t.Run("expired token is 403", func(t *testing.T) {
		raw, err := signer.Sign(jwtx.NewAccessClaims("u1", "a@b.c", "recon", -time.Second, time.Now()))
		require.NoError(t, err)

		rec := do("Bearer " + raw)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid or expired token")
	})

	t.Run("valid token reaches handler", func(t *testing.T) {
		raw, err := signer.Sign(jwtx.NewAccessClaims("u1", "a@b.c", "recon", time.Hour, time.Now()))
		require.NoError(t, err)

		rec := do("Bearer " + raw)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "u1", gotUser)
		require.Equal(t, "a@b.c", gotEmail)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
