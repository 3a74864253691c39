package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
)

type WorkspacesHandler struct {
	WorkspaceService *service.WorkspaceService
}

type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type WorkspacePayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type WorkspaceSummaryPayload struct {
	WorkspacePayload
	Owner        UserPayload `json:"owner"`
	TotalMembers int         `json:"totalMembers"`
}

type WorkspaceListResponse struct {
	Workspaces  []WorkspaceSummaryPayload `json:"workspaces"`
	HasNextPage bool                      `json:"hasNextPage"`
}

type MemberPayload struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
}

type WorkspaceDetailResponse struct {
	Workspace WorkspacePayload `json:"workspace"`
	Members   []MemberPayload  `json:"members"`
}

func toWorkspacePayload(w domain.Workspace) WorkspacePayload {
	return WorkspacePayload{
		ID:          w.ID,
		Name:        w.Name,
		Slug:        w.Slug,
		Description: w.Description,
		OwnerID:     w.OwnerID,
		CreatedAt:   w.CreatedAt,
	}
}

// HandleCreate creates a workspace.
//
//	@Summary		Create workspace
//	@Description	The slug is derived from the name; a name whose slug is
//	@Description	already taken is rejected.
//	@Tags			Workspaces
//	@Security		SessionAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateWorkspaceRequest	true	"Workspace"
//	@Success		201		{object}	WorkspacePayload
//	@Failure		401		"Missing or invalid session"
//	@Failure		409		{object}	httpx.ErrorResponse	"Slug already in use"
//	@Router			/v1/workspaces [post].
func (h *WorkspacesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ws, err := h.WorkspaceService.Create(ctx, callerID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toWorkspacePayload(ws))
}

// HandleList pages through the caller's workspaces.
//
//	@Summary	List workspaces
//	@Tags		Workspaces
//	@Security	SessionAuth
//	@Produce	json
//	@Param		page	query		int		false	"Page number, 1-based"
//	@Param		limit	query		int		false	"Page size, default 10"
//	@Param		q		query		string	false	"Name filter"
//	@Success	200		{object}	WorkspaceListResponse
//	@Failure	401		"Missing or invalid session"
//	@Router		/v1/workspaces [get].
func (h *WorkspacesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.WorkspaceService.List(ctx, callerID, r.URL.Query().Get("q"), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := WorkspaceListResponse{
		Workspaces:  make([]WorkspaceSummaryPayload, 0, len(result.Workspaces)),
		HasNextPage: result.HasNextPage,
	}
	for _, s := range result.Workspaces {
		resp.Workspaces = append(resp.Workspaces, WorkspaceSummaryPayload{
			WorkspacePayload: toWorkspacePayload(s.Workspace),
			Owner:            toUserPayload(s.Owner),
			TotalMembers:     s.TotalMembers,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one workspace with its members.
//
//	@Summary	Get workspace
//	@Tags		Workspaces
//	@Security	SessionAuth
//	@Produce	json
//	@Param		idOrSlug	path		string	true	"Workspace id or slug"
//	@Success	200			{object}	WorkspaceDetailResponse
//	@Failure	401			"Missing or invalid session"
//	@Failure	403			{object}	httpx.ErrorResponse	"Not a member"
//	@Failure	404			{object}	httpx.ErrorResponse	"Workspace not found"
//	@Router		/v1/workspaces/{idOrSlug} [get].
func (h *WorkspacesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	ws, members, err := h.WorkspaceService.Members(ctx, callerID, r.PathValue("idOrSlug"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := WorkspaceDetailResponse{
		Workspace: toWorkspacePayload(ws),
		Members:   make([]MemberPayload, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, MemberPayload{
			ID:             m.ID,
			UserID:         m.UserID,
			Name:           m.Name,
			Email:          m.Email,
			LastAccessedAt: m.LastAccessedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete removes a workspace. Owner only.
//
//	@Summary	Delete workspace
//	@Tags		Workspaces
//	@Security	SessionAuth
//	@Param		idOrSlug	path	string	true	"Workspace id or slug"
//	@Success	204			"Deleted"
//	@Failure	401			"Missing or invalid session"
//	@Failure	403			{object}	httpx.ErrorResponse	"Not the owner"
//	@Failure	404			{object}	httpx.ErrorResponse	"Workspace not found"
//	@Router		/v1/workspaces/{idOrSlug} [delete].
func (h *WorkspacesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.WorkspaceService.Delete(ctx, callerID, r.PathValue("idOrSlug")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
