package http

import (
	"errors"
	"net/http"

	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
	"github.com/taskerra/taskerra/pkg/slogx"
)

// Reset failures share one message on purpose. Malformed, expired and unknown
// tokens must be indistinguishable from the outside.
const msgInvalidResetToken = "Invalid token, please request a new one"

// writeServiceError maps service sentinels onto HTTP responses. Anything
// unrecognised is a 500 with no internal detail leaked.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidSession):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrSlugTaken):
		httpx.WriteError(w, http.StatusConflict, "Slug already in use")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrUnknownUser):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrUnknownEmail):
		httpx.WriteError(w, http.StatusNotFound, "Email not found")
	case errors.Is(err, service.ErrWorkspaceNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Workspace not found")
	case errors.Is(err, service.ErrProjectNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidResetToken)
	case errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidTask):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
