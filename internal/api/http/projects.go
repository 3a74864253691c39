package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
)

type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Background  string `json:"background,omitempty"`
}

type ProjectPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Background  string    `json:"background"`
	WorkspaceID string    `json:"workspaceId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectListResponse struct {
	Projects []ProjectPayload `json:"projects"`
}

func toProjectPayload(p domain.Project) ProjectPayload {
	return ProjectPayload{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Icon:        p.Icon,
		Background:  p.Background,
		WorkspaceID: p.WorkspaceID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h *ProjectsHandler) params(req ProjectRequest) service.CreateProjectParams {
	return service.CreateProjectParams{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Background:  req.Background,
	}
}

// HandleCreate adds a project to a workspace.
//
//	@Summary		Create project
//	@Description	Slug is derived from the name and unique within the
//	@Description	workspace. Icon and background fall back to defaults.
//	@Tags			Projects
//	@Security		SessionAuth
//	@Accept			json
//	@Produce		json
//	@Param			idOrSlug	path		string			true	"Workspace id or slug"
//	@Param			request		body		ProjectRequest	true	"Project"
//	@Success		201			{object}	ProjectPayload
//	@Failure		401			"Missing or invalid session"
//	@Failure		403			{object}	httpx.ErrorResponse	"Not a member"
//	@Failure		409			{object}	httpx.ErrorResponse	"Slug already in use"
//	@Router			/v1/workspaces/{idOrSlug}/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	p, err := h.ProjectService.Create(ctx, callerID, r.PathValue("idOrSlug"), h.params(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProjectPayload(p))
}

// HandleList returns a workspace's projects.
//
//	@Summary	List projects
//	@Tags		Projects
//	@Security	SessionAuth
//	@Produce	json
//	@Param		idOrSlug	path		string	true	"Workspace id or slug"
//	@Success	200			{object}	ProjectListResponse
//	@Failure	401			"Missing or invalid session"
//	@Failure	403			{object}	httpx.ErrorResponse	"Not a member"
//	@Router		/v1/workspaces/{idOrSlug}/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	projects, err := h.ProjectService.List(ctx, callerID, r.PathValue("idOrSlug"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := ProjectListResponse{Projects: make([]ProjectPayload, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, toProjectPayload(p))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one project.
//
//	@Summary	Get project
//	@Tags		Projects
//	@Security	SessionAuth
//	@Produce	json
//	@Param		idOrSlug	path		string	true	"Workspace id or slug"
//	@Param		project		path		string	true	"Project id or slug"
//	@Success	200			{object}	ProjectPayload
//	@Failure	401			"Missing or invalid session"
//	@Failure	404			{object}	httpx.ErrorResponse	"Project not found"
//	@Router		/v1/workspaces/{idOrSlug}/projects/{project} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	p, err := h.ProjectService.Get(ctx, callerID, r.PathValue("idOrSlug"), r.PathValue("project"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectPayload(p))
}

// HandleUpdate edits a project. Workspace owner only.
//
//	@Summary	Update project
//	@Tags		Projects
//	@Security	SessionAuth
//	@Accept		json
//	@Produce	json
//	@Param		idOrSlug	path		string			true	"Workspace id or slug"
//	@Param		project		path		string			true	"Project id or slug"
//	@Param		request		body		ProjectRequest	true	"Changed fields"
//	@Success	200			{object}	ProjectPayload
//	@Failure	401			"Missing or invalid session"
//	@Failure	403			{object}	httpx.ErrorResponse	"Not the owner"
//	@Failure	409			{object}	httpx.ErrorResponse	"Slug already in use"
//	@Router		/v1/workspaces/{idOrSlug}/projects/{project} [put].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	p, err := h.ProjectService.Update(ctx, callerID, r.PathValue("idOrSlug"), r.PathValue("project"), h.params(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjectPayload(p))
}

// HandleDelete removes a project. Workspace owner only.
//
//	@Summary	Delete project
//	@Tags		Projects
//	@Security	SessionAuth
//	@Param		idOrSlug	path	string	true	"Workspace id or slug"
//	@Param		project		path	string	true	"Project id or slug"
//	@Success	204			"Deleted"
//	@Failure	401			"Missing or invalid session"
//	@Failure	403			{object}	httpx.ErrorResponse	"Not the owner"
//	@Failure	404			{object}	httpx.ErrorResponse	"Project not found"
//	@Router		/v1/workspaces/{idOrSlug}/projects/{project} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.ProjectService.Delete(ctx, callerID, r.PathValue("idOrSlug"), r.PathValue("project")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
