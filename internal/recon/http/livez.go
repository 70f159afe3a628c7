package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness Check
//	@Description	Always 200 while the process is serving requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	reconsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, reconsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
