package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/recon/internal/recon/service"
	"github.com/aussiebroadwan/recon/pkg/httpx"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

type AccountHandler struct {
	AuthService *service.AuthService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an account. E-mail addresses are stored lower-cased; passwords need at least 8 characters.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		reconsdk.RegisterRequest	true	"username, email, password"
//	@Success		201		{object}	reconsdk.RegisterResponse	"message, user"
//	@Failure		400		{object}	reconsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	reconsdk.ErrorResponse		"error, error_description"
//	@Router			/register [post].
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req reconsdk.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		reconsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, reconsdk.RegisterResponse{
		Message: "User registered successfully",
		User:    toUserDTO(user),
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchange e-mail and password for a one-hour access token.
//	@Description	Three consecutive failures for an e-mail block it for five minutes; while blocked every attempt gets 429 with Retry-After.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		reconsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	reconsdk.LoginResponse	"message, token, expires_in"
//	@Failure		401		{object}	reconsdk.ErrorResponse	"invalid_credentials"
//	@Failure		404		{object}	reconsdk.ErrorResponse	"user_not_found"
//	@Failure		409		{object}	reconsdk.ErrorResponse	"otp_required"
//	@Failure		429		{object}	reconsdk.ErrorResponse	"locked_out, with retry_after_ms"
//	@Router			/login [post].
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	var req reconsdk.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		reconsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		reconsdk.NewAPIError(http.StatusBadRequest, reconsdk.ErrorCodeInvalidRequest, "email is required").WriteError(w)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reconsdk.LoginResponse{
		Message:   "Login successful",
		Token:     res.Token,
		ExpiresIn: int(res.ExpiresIn.Seconds()),
	})
}

// HandleSendOTP godoc
//
//	@Summary		Send OTP
//	@Description	Issue a 6-digit one-time code valid for ten minutes and deliver it by e-mail. Any pending code is replaced.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		reconsdk.SendOTPRequest		true	"email"
//	@Success		200		{object}	reconsdk.MessageResponse	"message"
//	@Failure		404		{object}	reconsdk.ErrorResponse		"user_not_found"
//	@Failure		500		{object}	reconsdk.ErrorResponse		"delivery failed"
//	@Router			/send-otp [post].
func (h *AccountHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req reconsdk.SendOTPRequest
	if err := decodeBody(w, r, &req); err != nil {
		reconsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.SendOTP(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reconsdk.MessageResponse{Message: "OTP sent successfully"})
}

// HandleVerifyOTP godoc
//
//	@Summary		Verify OTP
//	@Description	Check a one-time code. A correct code is consumed.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		reconsdk.VerifyOTPRequest	true	"email, otp"
//	@Success		200		{object}	reconsdk.VerifyOTPResponse	"success"
//	@Failure		400		{object}	reconsdk.ErrorResponse		"otp_mismatch or otp_expired"
//	@Failure		404		{object}	reconsdk.ErrorResponse		"user_not_found"
//	@Router			/verify-otp [post].
func (h *AccountHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	var req reconsdk.VerifyOTPRequest
	if err := decodeBody(w, r, &req); err != nil {
		reconsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reconsdk.VerifyOTPResponse{Success: true})
}
