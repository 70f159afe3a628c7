package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

// ScanHandler submits scans of one category. With AnyCategory set the body's
// scanCategory may select a different one.
type ScanHandler struct {
	ScanService *service.ScanService
	Category    domain.ScanCategory
	AnyCategory bool
}

// ServeHTTP godoc
//
//	@Summary		Submit scan
//	@Description	Forward the target to the scan engine and save a clean result.
//	@Description	/process-link runs a social scan unless scanCategory names another category; the suffixed routes reject a scanCategory that disagrees with the route.
//	@Tags			Scans
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		reconsdk.ScanRequest	true	"target, optional scanCategory"
//	@Success		200		{object}	reconsdk.ScanResponse	"message, fastapi_response, savedScan"
//	@Failure		400		{object}	reconsdk.ErrorResponse	"invalid_target, invalid_category, scan_failed"
//	@Failure		401		{object}	reconsdk.ErrorResponse	"missing_token"
//	@Failure		403		{object}	reconsdk.ErrorResponse	"invalid_token"
//	@Failure		500		{object}	reconsdk.ErrorResponse	"upstream_unavailable"
//	@Router			/process-link [post]
//	@Router			/process-link-shodan [post]
//	@Router			/process-link-passwords [post]
//	@Router			/process-link-crawl [post]
//	@Router			/process-link-web [post].
func (h *ScanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserID(ctx)
	if !ok {
		reconsdk.ErrMissingToken.WriteError(w)
		return
	}

	var req reconsdk.ScanRequest
	if err := decodeBody(w, r, &req); err != nil {
		reconsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	category := h.Category
	if req.ScanCategory != "" {
		requested := domain.ScanCategory(req.ScanCategory)
		if !requested.Valid() || (!h.AnyCategory && requested != h.Category) {
			reconsdk.ErrInvalidCategory.WriteError(w)
			return
		}
		category = requested
	}

	res, err := h.ScanService.Submit(ctx, userID, req.Target, category)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// The token outlived its account.
			reconsdk.NewAPIError(http.StatusBadRequest, reconsdk.ErrorCodeUserNotFound, "User not found").WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reconsdk.ScanResponse{
		Message:         "Processed link: " + res.Record.URLOrIP,
		FastAPIResponse: res.Raw,
		SavedScan:       toScanDTO(res.Record),
	})
}

// ScansHandler lists saved scans.
type ScansHandler struct {
	ScanService *service.ScanService
}

// ServeHTTP godoc
//
//	@Summary		List scans
//	@Description	Saved scans, newest first. Both filters are exact matches.
//	@Tags			Scans
//	@Produce		json
//	@Security		BearerAuth
//	@Param			scanType		query		string					false	"active or passive"
//	@Param			scanCategory	query		string					false	"social, shodan, passwords, crawl or web"
//	@Success		200				{object}	reconsdk.ScansResponse	"message, scans"
//	@Failure		400				{object}	reconsdk.ErrorResponse	"invalid_filter"
//	@Failure		401				{object}	reconsdk.ErrorResponse	"missing_token"
//	@Failure		403				{object}	reconsdk.ErrorResponse	"invalid_token"
//	@Router			/scans [get].
func (h *ScansHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserID(ctx)

	q := r.URL.Query()
	scans, err := h.ScanService.ListScans(ctx, userID, service.ScanQuery{
		ScanType:     q.Get("scanType"),
		ScanCategory: q.Get("scanCategory"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]reconsdk.ScanRecord, 0, len(scans))
	for _, s := range scans {
		out = append(out, toScanDTO(s))
	}

	httpx.WriteJSON(w, http.StatusOK, reconsdk.ScansResponse{
		Message: "Scans retrieved successfully",
		Scans:   out,
	})
}
