package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/store"
	"github.com/taskerra/taskerra/pkg/idx"
)

var (
	ErrTaskNotFound = errors.New("task_not_found")
	ErrInvalidTask  = errors.New("invalid_task")
)

type TaskService struct {
	Store      store.Store
	Workspaces *WorkspaceService
}

type TaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	AssigneeID  *string
}

// projectForMember loads a project and verifies the caller belongs to its
// workspace.
func (s *TaskService) projectForMember(ctx context.Context, callerID, projectID string) (domain.Project, error) {
	p, err := s.Store.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, err
	}

	member, err := s.Store.Workspaces().IsMember(ctx, p.WorkspaceID, callerID)
	if err != nil {
		return domain.Project{}, err
	}
	if !member {
		return domain.Project{}, ErrForbidden
	}
	return p, nil
}

// Create adds a task to a project. Status defaults to todo and priority to
// medium when unset.
func (s *TaskService) Create(ctx context.Context, callerID, projectID string, params TaskParams) (domain.Task, error) {
	if _, err := s.projectForMember(ctx, callerID, projectID); err != nil {
		return domain.Task{}, err
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return domain.Task{}, ErrInvalidTask
	}

	status := params.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	priority := params.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !domain.ValidTaskStatus(status) || !domain.ValidTaskPriority(priority) {
		return domain.Task{}, ErrInvalidTask
	}

	now := time.Now().UTC()
	t := domain.Task{
		ID:          idx.New().String(),
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     params.DueDate,
		ProjectID:   projectID,
		AssigneeID:  params.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Tasks().Create(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Get fetches a task for a workspace member.
func (s *TaskService) Get(ctx context.Context, callerID, taskID string) (domain.Task, error) {
	t, err := s.Store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	if _, err := s.projectForMember(ctx, callerID, t.ProjectID); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// List returns a project's tasks for a workspace member.
func (s *TaskService) List(ctx context.Context, callerID, projectID string) ([]domain.Task, error) {
	if _, err := s.projectForMember(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.Store.Tasks().ListForProject(ctx, projectID)
}

// Update edits a task. Any workspace member may update.
func (s *TaskService) Update(ctx context.Context, callerID, taskID string, params TaskParams) (domain.Task, error) {
	t, err := s.Get(ctx, callerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		t.Title = title
	}
	if params.Description != "" {
		t.Description = strings.TrimSpace(params.Description)
	}
	if params.Status != "" {
		if !domain.ValidTaskStatus(params.Status) {
			return domain.Task{}, ErrInvalidTask
		}
		t.Status = params.Status
	}
	if params.Priority != "" {
		if !domain.ValidTaskPriority(params.Priority) {
			return domain.Task{}, ErrInvalidTask
		}
		t.Priority = params.Priority
	}
	if params.DueDate != nil {
		t.DueDate = params.DueDate
	}
	if params.AssigneeID != nil {
		t.AssigneeID = params.AssigneeID
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.Store.Tasks().Update(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Delete removes a task. Any workspace member may delete.
func (s *TaskService) Delete(ctx context.Context, callerID, taskID string) error {
	t, err := s.Get(ctx, callerID, taskID)
	if err != nil {
		return err
	}
	return s.Store.Tasks().Delete(ctx, t.ID)
}
