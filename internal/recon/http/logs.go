package http

import (
	"net/http"

	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

type LogsHandler struct {
	ScanService *service.ScanService
}

// HandleList godoc
//
//	@Summary		List activity log
//	@Description	Log entries, newest first
//	@Tags			Logs
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	reconsdk.LogsResponse	"message, logs"
//	@Failure		401	{object}	reconsdk.ErrorResponse	"missing_token"
//	@Failure		403	{object}	reconsdk.ErrorResponse	"invalid_token"
//	@Router			/log [get].
func (h *LogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserID(ctx)

	logs, err := h.ScanService.ListLogs(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]reconsdk.LogEntry, 0, len(logs))
	for _, e := range logs {
		out = append(out, toLogDTO(e))
	}

	httpx.WriteJSON(w, http.StatusOK, reconsdk.LogsResponse{
		Message: "Logs retrieved successfully",
		Logs:    out,
	})
}

// HandleAppend godoc
//
//	@Summary		Append log entry
//	@Description	Record a free-form action for the caller
//	@Tags			Logs
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		reconsdk.AppendLogRequest	true	"action"
//	@Success		201		{object}	reconsdk.AppendLogResponse	"message, log"
//	@Failure		400		{object}	reconsdk.ErrorResponse		"invalid_request"
//	@Failure		401		{object}	reconsdk.ErrorResponse		"missing_token"
//	@Failure		403		{object}	reconsdk.ErrorResponse		"invalid_token"
//	@Router			/log [post].
func (h *LogsHandler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserID(ctx)

	var req reconsdk.AppendLogRequest
	if err := decodeBody(w, r, &req); err != nil {
		reconsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	entry, err := h.ScanService.AppendLog(ctx, userID, req.Action)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, reconsdk.AppendLogResponse{
		Message: "Log saved successfully",
		Log:     toLogDTO(entry),
	})
}
