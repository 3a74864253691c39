package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/service"
	"github.com/taskerra/taskerra/pkg/httpx"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ProjectID   string     `json:"projectId,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
}

type TaskPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ProjectID   string     `json:"projectId"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskListResponse struct {
	Tasks []TaskPayload `json:"tasks"`
}

func toTaskPayload(t domain.Task) TaskPayload {
	return TaskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskParams(req TaskRequest) service.TaskParams {
	return service.TaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	}
}

// HandleCreate adds a task to a project.
//
//	@Summary		Create task
//	@Description	Status defaults to "todo" and priority to "medium".
//	@Tags			Tasks
//	@Security		SessionAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TaskRequest	true	"Task; projectId is required"
//	@Success		201		{object}	TaskPayload
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid request"
//	@Failure		401		"Missing or invalid session"
//	@Failure		403		{object}	httpx.ErrorResponse	"Not a member"
//	@Router			/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.ProjectID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.TaskService.Create(ctx, callerID, req.ProjectID, toTaskParams(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTaskPayload(task))
}

// HandleList returns a project's tasks.
//
//	@Summary	List tasks
//	@Tags		Tasks
//	@Security	SessionAuth
//	@Produce	json
//	@Param		projectId	query		string	true	"Project id"
//	@Success	200			{object}	TaskListResponse
//	@Failure	401			"Missing or invalid session"
//	@Failure	403			{object}	httpx.ErrorResponse	"Not a member"
//	@Router		/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	tasks, err := h.TaskService.List(ctx, callerID, projectID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := TaskListResponse{Tasks: make([]TaskPayload, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskPayload(t))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one task.
//
//	@Summary	Get task
//	@Tags		Tasks
//	@Security	SessionAuth
//	@Produce	json
//	@Param		id	path		string	true	"Task id"
//	@Success	200	{object}	TaskPayload
//	@Failure	401	"Missing or invalid session"
//	@Failure	404	{object}	httpx.ErrorResponse	"Task not found"
//	@Router		/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	task, err := h.TaskService.Get(ctx, callerID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskPayload(task))
}

// HandleUpdate edits a task.
//
//	@Summary	Update task
//	@Tags		Tasks
//	@Security	SessionAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Task id"
//	@Param		request	body		TaskRequest	true	"Changed fields"
//	@Success	200		{object}	TaskPayload
//	@Failure	400		{object}	httpx.ErrorResponse	"Invalid request"
//	@Failure	401		"Missing or invalid session"
//	@Failure	404		{object}	httpx.ErrorResponse	"Task not found"
//	@Router		/v1/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.TaskService.Update(ctx, callerID, r.PathValue("id"), toTaskParams(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskPayload(task))
}

// HandleDelete removes a task.
//
//	@Summary	Delete task
//	@Tags		Tasks
//	@Security	SessionAuth
//	@Param		id	path	string	true	"Task id"
//	@Success	204	"Deleted"
//	@Failure	401	"Missing or invalid session"
//	@Failure	404	{object}	httpx.ErrorResponse	"Task not found"
//	@Router		/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.TaskService.Delete(ctx, callerID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
