package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/store"
	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check
//	@Description	Pings the database and the scan engine's /health endpoint
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	reconsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	reconsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, engine EngineChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &reconsdk.HealthChecks{
			Database: "ok",
			Engine:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if engine == nil {
			checks.Engine = "unchecked"
		} else if err := engine.Health(r.Context()); err != nil {
			checks.Engine = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, reconsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
