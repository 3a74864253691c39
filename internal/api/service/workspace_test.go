package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspaceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &WorkspaceService{Store: st}
	owner := createTestUser(t, st, "ws-owner@example.com", "password-123")

	t.Run("slugifies the name and adds the owner as member", func(t *testing.T) {
		ws, err := svc.Create(ctx, owner.ID, "Café Projects 2026", "")
		require.NoError(t, err)
		require.Equal(t, "cafe-projects-2026", ws.Slug)

		member, err := st.Workspaces().IsMember(ctx, ws.ID, owner.ID)
		require.NoError(t, err)
		require.True(t, member)
	})

	t.Run("slug collision conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, "CAFE projects 2026", "")
		require.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("name that slugifies to nothing is invalid", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, "!!!", "")
		require.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestWorkspaceList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &WorkspaceService{Store: st}
	owner := createTestUser(t, st, "ws-list@example.com", "password-123")

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, owner.ID, fmt.Sprintf("Workspace %02d", i), "")
		require.NoError(t, err)
	}

	t.Run("pages with hasNextPage", func(t *testing.T) {
		page, err := svc.List(ctx, owner.ID, "", 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Workspaces, 10)
		require.True(t, page.HasNextPage)

		page, err = svc.List(ctx, owner.ID, "", 2, 10)
		require.NoError(t, err)
		require.Len(t, page.Workspaces, 2)
		require.False(t, page.HasNextPage)
	})

	t.Run("filters by name", func(t *testing.T) {
		page, err := svc.List(ctx, owner.ID, "workspace 03", 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Workspaces, 1)
		require.Equal(t, "Workspace 03", page.Workspaces[0].Name)
	})

	t.Run("membership scoped", func(t *testing.T) {
		stranger := createTestUser(t, st, "ws-stranger@example.com", "password-123")
		page, err := svc.List(ctx, stranger.ID, "", 1, 10)
		require.NoError(t, err)
		require.Empty(t, page.Workspaces)
	})
}

func TestWorkspaceResolveAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &WorkspaceService{Store: st}

	owner := createTestUser(t, st, "ws-resolve@example.com", "password-123")
	outsider := createTestUser(t, st, "ws-outsider@example.com", "password-123")

	ws, err := svc.Create(ctx, owner.ID, "Resolution Target", "")
	require.NoError(t, err)

	t.Run("resolves by id and by slug", func(t *testing.T) {
		byID, err := svc.Resolve(ctx, owner.ID, ws.ID)
		require.NoError(t, err)
		require.Equal(t, ws.ID, byID.ID)

		bySlug, err := svc.Resolve(ctx, owner.ID, "resolution-target")
		require.NoError(t, err)
		require.Equal(t, ws.ID, bySlug.ID)
	})

	t.Run("members payload includes the owner", func(t *testing.T) {
		_, members, err := svc.Members(ctx, owner.ID, ws.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.Equal(t, owner.ID, members[0].UserID)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := svc.Resolve(ctx, outsider.ID, ws.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown workspace is not found", func(t *testing.T) {
		_, err := svc.Resolve(ctx, owner.ID, "no-such-workspace")
		require.ErrorIs(t, err, ErrWorkspaceNotFound)
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		member := createTestUser(t, st, "ws-member@example.com", "password-123")
		require.NoError(t, st.Workspaces().AddMember(ctx, "m-delete", ws.ID, member.ID, ws.CreatedAt))

		require.ErrorIs(t, svc.Delete(ctx, member.ID, ws.ID), ErrForbidden)
		require.NoError(t, svc.Delete(ctx, owner.ID, ws.ID))

		_, err := svc.Resolve(ctx, owner.ID, ws.ID)
		require.ErrorIs(t, err, ErrWorkspaceNotFound)
	})
}
