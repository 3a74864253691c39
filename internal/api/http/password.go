package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
)

type PasswordHandler struct {
	PasswordService *service.PasswordService
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// HandleForgot starts the reset flow.
//
//	@Summary		Request a password reset
//	@Description	Mints a single-use recovery token and emails a reset link.
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	MessageResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"Email not found"
//	@Router			/v1/password/forgot [post].
func (h *PasswordHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := h.PasswordService.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Reset email sent"})
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// HandleReset redeems a recovery token.
//
//	@Summary		Reset the password
//	@Description	Redeems a recovery token and sets a new password. Tokens are
//	@Description	single use and expire 24 hours after issuance; all failures
//	@Description	share one generic message.
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResetPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid token"
//	@Failure		404		{object}	httpx.ErrorResponse	"User not found"
//	@Router			/v1/password/reset [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(req.Password) < service.MinPasswordLength {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := h.PasswordService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password updated"})
}
