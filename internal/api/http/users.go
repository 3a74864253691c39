package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserResponse struct {
	User UserPayload `json:"user"`
}

func toUserPayload(u domain.User) UserPayload {
	return UserPayload{ID: u.ID, Name: u.Name, Email: u.Email}
}

// HandleRegister creates an account.
//
//	@Summary		Register
//	@Description	Creates an account. Name must be at least 5 characters and
//	@Description	the password at least 8.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"New account"
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid request"
//	@Failure		409		{object}	httpx.ErrorResponse	"Email already in use"
//	@Router			/v1/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	id, err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{UserID: id})
}

// HandleGet returns a user's public profile.
//
//	@Summary	Get user
//	@Tags		Users
//	@Security	SessionAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	UserResponse
//	@Failure	401	"Missing or invalid session"
//	@Failure	404	{object}	httpx.ErrorResponse	"User not found"
//	@Router		/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: toUserPayload(user)})
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleUpdate edits the caller's own profile.
//
//	@Summary		Update user
//	@Description	Users may only edit themselves.
//	@Tags			Users
//	@Security		SessionAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User id"
//	@Param			request	body		UpdateUserRequest	true	"New profile"
//	@Success		200		{object}	UserResponse
//	@Failure		401		"Missing or invalid session"
//	@Failure		403		{object}	httpx.ErrorResponse	"Not your profile"
//	@Failure		409		{object}	httpx.ErrorResponse	"Email already in use"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := h.UserService.UpdateProfile(ctx, callerID, r.PathValue("id"), req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: toUserPayload(user)})
}
