package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
)

type SignInHandler struct {
	SessionService *service.SessionService
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

// ServeHTTP handles sign-in.
//
//	@Summary		Sign in
//	@Description	Verifies email and password and issues a fresh session. Any
//	@Description	previously live session for the account is invalidated. The
//	@Description	token is returned in the body and as the "session" cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignInRequest	true	"Credentials"
//	@Success		200		{object}	SignInResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid email or password"
//	@Router			/v1/sign-in [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	_, token, err := h.SessionService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, SignInResponse{Token: token})
}

type SignOutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP handles sign-out.
//
//	@Summary		Sign out
//	@Description	Invalidates every live session belonging to the caller and
//	@Description	clears the session cookie. Idempotent.
//	@Tags			Auth
//	@Security		SessionAuth
//	@Produce		json
//	@Success		204	"Signed out"
//	@Failure		401	"Missing or invalid session"
//	@Router			/v1/sign-out [post].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.SessionService.SignOut(ctx, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   httpx.SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}
