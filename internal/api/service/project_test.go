package service

import (
	"context"
	"testing"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestProjectLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	workspaces := &WorkspaceService{Store: st}
	svc := &ProjectService{Store: st, Workspaces: workspaces}

	owner := createTestUser(t, st, "proj-owner@example.com", "password-123")
	member := createTestUser(t, st, "proj-member@example.com", "password-123")
	outsider := createTestUser(t, st, "proj-outsider@example.com", "password-123")

	ws, err := workspaces.Create(ctx, owner.ID, "Project Home", "")
	require.NoError(t, err)
	require.NoError(t, st.Workspaces().AddMember(ctx, "m-proj", ws.ID, member.ID, ws.CreatedAt))

	t.Run("create applies defaults and slug", func(t *testing.T) {
		p, err := svc.Create(ctx, owner.ID, ws.ID, CreateProjectParams{Name: "Backend Rewrite"})
		require.NoError(t, err)
		require.Equal(t, "backend-rewrite", p.Slug)
		require.Equal(t, domain.DefaultProjectIcon, p.Icon)
		require.Equal(t, domain.DefaultProjectBackground, p.Background)
	})

	t.Run("slug collision within the workspace conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, ws.ID, CreateProjectParams{Name: "Backend REWRITE"})
		require.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("get resolves id and workspace-scoped slug", func(t *testing.T) {
		bySlug, err := svc.Get(ctx, member.ID, "project-home", "backend-rewrite")
		require.NoError(t, err)

		byID, err := svc.Get(ctx, member.ID, ws.ID, bySlug.ID)
		require.NoError(t, err)
		require.Equal(t, bySlug.ID, byID.ID)
	})

	t.Run("outsider cannot reach the workspace", func(t *testing.T) {
		_, err := svc.Get(ctx, outsider.ID, ws.ID, "backend-rewrite")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("update is owner-only and re-slugs on rename", func(t *testing.T) {
		_, err := svc.Update(ctx, member.ID, ws.ID, "backend-rewrite", CreateProjectParams{Name: "Renamed"})
		require.ErrorIs(t, err, ErrForbidden)

		p, err := svc.Update(ctx, owner.ID, ws.ID, "backend-rewrite", CreateProjectParams{Name: "Platform Rewrite"})
		require.NoError(t, err)
		require.Equal(t, "platform-rewrite", p.Slug)
	})

	t.Run("update keeps the slug when only metadata changes", func(t *testing.T) {
		p, err := svc.Update(ctx, owner.ID, ws.ID, "platform-rewrite", CreateProjectParams{Description: "now with details"})
		require.NoError(t, err)
		require.Equal(t, "platform-rewrite", p.Slug)
		require.Equal(t, "now with details", p.Description)
	})

	t.Run("rename onto an existing slug conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, ws.ID, CreateProjectParams{Name: "Second Project"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, owner.ID, ws.ID, "second-project", CreateProjectParams{Name: "Platform Rewrite"})
		require.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("delete is owner-only", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, member.ID, ws.ID, "second-project"), ErrForbidden)
		require.NoError(t, svc.Delete(ctx, owner.ID, ws.ID, "second-project"))

		_, err := svc.Get(ctx, owner.ID, ws.ID, "second-project")
		require.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("list is workspace scoped", func(t *testing.T) {
		projects, err := svc.List(ctx, member.ID, ws.ID)
		require.NoError(t, err)
		require.Len(t, projects, 1)
	})
}
