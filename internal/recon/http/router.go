package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/internal/recon/store"
	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/jwtx"
	"github.com/aussiebroadwan/recon/pkg/slogx"

	_ "github.com/aussiebroadwan/recon/api/recon" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// EngineChecker reports whether the scan engine is reachable.
type EngineChecker interface {
	Health(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	AuthService  *service.AuthService
	ScanService  *service.ScanService
	EngineHealth EngineChecker // Optional: readyz skips the engine check when nil
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccount()
	r.registerScans()
	r.registerLogs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Recon API
//	@version		0.1.0
//	@description	Authenticated proxy in front of the recon scan engine. Accounts log in with
//	@description	e-mail and password under a per-address lockout, scans are forwarded to the
//	@description	engine and clean results are kept as scan history.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/recon
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token from /login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccount() {
	h := &AccountHandler{AuthService: r.AuthService}

	// POST /register - strict rate limit by IP (public signup)
	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - moderate limit by IP + email; the lockout policy does the rest
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.ModerateLimit, "email"),
		),
	)

	// OTP endpoints - strict, codes are short
	r.Mux.Handle("POST /send-otp",
		httpx.Chain(http.HandlerFunc(h.HandleSendOTP),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
}

func (r *Router) registerScans() {
	// /process-link is the social route; its body may pick any category.
	for _, c := range domain.Categories {
		h := &ScanHandler{ScanService: r.ScanService, Category: c, AnyCategory: c == domain.CategorySocial}
		r.Mux.Handle("POST "+scanRoute(c),
			httpx.Chain(h,
				httpx.AuthnMiddleware(r.verifier),
				httpx.RateLimitByUser(httpx.ModerateLimit),
			),
		)
	}

	list := &ScansHandler{ScanService: r.ScanService}
	r.Mux.Handle("GET /scans",
		httpx.Chain(list,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerLogs() {
	h := &LogsHandler{ScanService: r.ScanService}

	r.Mux.Handle("GET /log",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /log",
		httpx.Chain(http.HandlerFunc(h.HandleAppend),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.EngineHealth),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func scanRoute(c domain.ScanCategory) string {
	if c == domain.CategorySocial {
		return "/process-link"
	}
	return "/process-link-" + string(c)
}
