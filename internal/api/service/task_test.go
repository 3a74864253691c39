package service

import (
	"context"
	"testing"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	workspaces := &WorkspaceService{Store: st}
	projects := &ProjectService{Store: st, Workspaces: workspaces}
	svc := &TaskService{Store: st, Workspaces: workspaces}

	owner := createTestUser(t, st, "task-owner@example.com", "password-123")
	outsider := createTestUser(t, st, "task-outsider@example.com", "password-123")

	ws, err := workspaces.Create(ctx, owner.ID, "Task Home", "")
	require.NoError(t, err)
	project, err := projects.Create(ctx, owner.ID, ws.ID, CreateProjectParams{Name: "Board"})
	require.NoError(t, err)

	t.Run("create applies defaults", func(t *testing.T) {
		task, err := svc.Create(ctx, owner.ID, project.ID, TaskParams{Title: "Write the docs"})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusTodo, task.Status)
		require.Equal(t, domain.TaskPriorityMedium, task.Priority)
		require.Nil(t, task.DueDate)
		require.Nil(t, task.AssigneeID)
	})

	t.Run("rejects blank title and bad enums", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, project.ID, TaskParams{Title: "   "})
		require.ErrorIs(t, err, ErrInvalidTask)

		_, err = svc.Create(ctx, owner.ID, project.ID, TaskParams{Title: "ok", Status: "archived"})
		require.ErrorIs(t, err, ErrInvalidTask)

		_, err = svc.Create(ctx, owner.ID, project.ID, TaskParams{Title: "ok", Priority: "urgent"})
		require.ErrorIs(t, err, ErrInvalidTask)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, outsider.ID, project.ID, TaskParams{Title: "sneaky"})
		require.ErrorIs(t, err, ErrForbidden)

		_, err = svc.List(ctx, outsider.ID, project.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("update moves status and assigns", func(t *testing.T) {
		task, err := svc.Create(ctx, owner.ID, project.ID, TaskParams{Title: "Move me"})
		require.NoError(t, err)

		due := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
		got, err := svc.Update(ctx, owner.ID, task.ID, TaskParams{
			Status:     domain.TaskStatusInProgress,
			Priority:   domain.TaskPriorityHigh,
			DueDate:    &due,
			AssigneeID: &owner.ID,
		})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusInProgress, got.Status)
		require.Equal(t, domain.TaskPriorityHigh, got.Priority)
		require.NotNil(t, got.DueDate)
		require.NotNil(t, got.AssigneeID)
		require.Equal(t, owner.ID, *got.AssigneeID)

		reloaded, err := svc.Get(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusInProgress, reloaded.Status)
	})

	t.Run("list returns the project's tasks", func(t *testing.T) {
		tasks, err := svc.List(ctx, owner.ID, project.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
	})

	t.Run("delete removes the task", func(t *testing.T) {
		task, err := svc.Create(ctx, owner.ID, project.ID, TaskParams{Title: "Short lived"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, owner.ID, task.ID))

		_, err = svc.Get(ctx, owner.ID, task.ID)
		require.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("unknown task is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, owner.ID, "01JNOSUCHTASK000000000000")
		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestHousekeepingCleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)

	stale := time.Now().UTC().Add(-30 * time.Hour)
	fresh := time.Now().UTC()

	require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
		Token: "stale-token", UserID: "u1", CreatedAt: stale,
	}))
	require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
		Token: "fresh-token", UserID: "u1", CreatedAt: fresh,
	}))

	svc := NewHousekeepingService(st, testLogger(), time.Hour)
	svc.cleanup()

	_, err := st.RecoveryTokens().Get(ctx, "stale-token")
	require.Error(t, err)

	_, err = st.RecoveryTokens().Get(ctx, "fresh-token")
	require.NoError(t, err)
}
