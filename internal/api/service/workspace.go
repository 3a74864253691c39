package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/store"
	"github.com/taskerra/taskerra/pkg/idx"
	"github.com/taskerra/taskerra/pkg/slugx"
)

var (
	ErrSlugTaken         = errors.New("slug_taken")
	ErrWorkspaceNotFound = errors.New("workspace_not_found")
	ErrInvalidName       = errors.New("invalid_name")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type WorkspaceService struct {
	Store store.Store
}

// WorkspacePage is one page of a user's workspace listing.
type WorkspacePage struct {
	Workspaces  []domain.WorkspaceSummary
	HasNextPage bool
}

// Create slugifies the name and creates the workspace with the caller as
// owner and first member. A slug already held by another workspace is a
// conflict; names that slugify to nothing are rejected.
func (s *WorkspaceService) Create(ctx context.Context, ownerID, name, description string) (domain.Workspace, error) {
	name = strings.TrimSpace(name)
	slug := slugx.Slugify(name)
	if slug == "" {
		return domain.Workspace{}, ErrInvalidName
	}

	now := time.Now().UTC()
	ws := domain.Workspace{
		ID:          idx.New().String(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Workspaces().Create(ctx, ws); err != nil {
			return err
		}
		return tx.Workspaces().AddMember(ctx, idx.New().String(), ws.ID, ownerID, now)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Workspace{}, ErrSlugTaken
		}
		return domain.Workspace{}, err
	}
	return ws, nil
}

// List returns a page of the caller's workspaces. Page numbers start at 1.
func (s *WorkspaceService) List(ctx context.Context, userID, nameQuery string, page, limit int) (WorkspacePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	// Fetch one extra row to learn whether another page exists.
	rows, err := s.Store.Workspaces().ListForUser(ctx, userID, strings.TrimSpace(nameQuery), (page-1)*limit, limit+1)
	if err != nil {
		return WorkspacePage{}, err
	}

	out := WorkspacePage{Workspaces: rows}
	if len(rows) > limit {
		out.Workspaces = rows[:limit]
		out.HasNextPage = true
	}
	return out, nil
}

// Resolve finds a workspace by id, falling back to slug lookup, and verifies
// the caller is a member.
func (s *WorkspaceService) Resolve(ctx context.Context, callerID, idOrSlug string) (domain.Workspace, error) {
	ws, err := s.Store.Workspaces().GetByID(ctx, idOrSlug)
	if errors.Is(err, store.ErrNotFound) {
		ws, err = s.Store.Workspaces().GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Workspace{}, ErrWorkspaceNotFound
		}
		return domain.Workspace{}, err
	}

	member, err := s.Store.Workspaces().IsMember(ctx, ws.ID, callerID)
	if err != nil {
		return domain.Workspace{}, err
	}
	if !member {
		return domain.Workspace{}, ErrForbidden
	}

	_ = s.Store.Workspaces().TouchMember(ctx, ws.ID, callerID, time.Now().UTC())
	return ws, nil
}

// Members lists a workspace's members for a caller who is one of them.
func (s *WorkspaceService) Members(ctx context.Context, callerID, idOrSlug string) (domain.Workspace, []domain.Member, error) {
	ws, err := s.Resolve(ctx, callerID, idOrSlug)
	if err != nil {
		return domain.Workspace{}, nil, err
	}
	members, err := s.Store.Workspaces().ListMembers(ctx, ws.ID)
	if err != nil {
		return domain.Workspace{}, nil, err
	}
	return ws, members, nil
}

// Delete removes a workspace. Owner only.
func (s *WorkspaceService) Delete(ctx context.Context, callerID, idOrSlug string) error {
	ws, err := s.Resolve(ctx, callerID, idOrSlug)
	if err != nil {
		return err
	}
	if ws.OwnerID != callerID {
		return ErrForbidden
	}
	return s.Store.Workspaces().Delete(ctx, ws.ID)
}
