package httpx

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/recon/pkg/jwtx"
	"github.com/aussiebroadwan/recon/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token. A request without a token
// gets 401; a token that fails verification or has expired gets 403.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			claims, err := jwtx.Authenticate(v, r.Header.Get("Authorization"))
			switch {
			case errors.Is(err, jwtx.ErrMissingToken):
				w.Header().Set("WWW-Authenticate", `Bearer realm="recon"`)
				WriteError(w, http.StatusUnauthorized, "missing_token", "Access token required")
				return
			case err != nil:
				log.Warn("jwt verify failed", "err", err)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusForbidden, "invalid_token", "Invalid or expired token")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "user_id", claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
