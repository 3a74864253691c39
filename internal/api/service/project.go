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

var ErrProjectNotFound = errors.New("project_not_found")

type ProjectService struct {
	Store      store.Store
	Workspaces *WorkspaceService
}

type CreateProjectParams struct {
	Name        string
	Description string
	Icon        string
	Background  string
}

// Create adds a project to a workspace the caller belongs to. The slug is
// derived from the name and must be unique within the workspace.
func (s *ProjectService) Create(ctx context.Context, callerID, workspaceIDOrSlug string, params CreateProjectParams) (domain.Project, error) {
	ws, err := s.Workspaces.Resolve(ctx, callerID, workspaceIDOrSlug)
	if err != nil {
		return domain.Project{}, err
	}

	name := strings.TrimSpace(params.Name)
	slug := slugx.Slugify(name)
	if slug == "" {
		return domain.Project{}, ErrInvalidName
	}

	icon := params.Icon
	if icon == "" {
		icon = domain.DefaultProjectIcon
	}
	background := params.Background
	if background == "" {
		background = domain.DefaultProjectBackground
	}

	now := time.Now().UTC()
	p := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(params.Description),
		Icon:        icon,
		Background:  background,
		WorkspaceID: ws.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Projects().Create(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Project{}, ErrSlugTaken
		}
		return domain.Project{}, err
	}
	return p, nil
}

// Get fetches a project by id or by workspace-scoped slug, enforcing
// workspace membership.
func (s *ProjectService) Get(ctx context.Context, callerID, workspaceIDOrSlug, projectIDOrSlug string) (domain.Project, error) {
	ws, err := s.Workspaces.Resolve(ctx, callerID, workspaceIDOrSlug)
	if err != nil {
		return domain.Project{}, err
	}

	p, err := s.Store.Projects().GetByID(ctx, projectIDOrSlug)
	if errors.Is(err, store.ErrNotFound) {
		p, err = s.Store.Projects().GetBySlug(ctx, ws.ID, projectIDOrSlug)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, err
	}
	if p.WorkspaceID != ws.ID {
		return domain.Project{}, ErrProjectNotFound
	}
	return p, nil
}

// List returns a workspace's projects for a member.
func (s *ProjectService) List(ctx context.Context, callerID, workspaceIDOrSlug string) ([]domain.Project, error) {
	ws, err := s.Workspaces.Resolve(ctx, callerID, workspaceIDOrSlug)
	if err != nil {
		return nil, err
	}
	return s.Store.Projects().ListForWorkspace(ctx, ws.ID)
}

// Update edits a project. Only the workspace owner may mutate. The slug is
// recomputed only when the name actually changed.
func (s *ProjectService) Update(ctx context.Context, callerID, workspaceIDOrSlug, projectIDOrSlug string, params CreateProjectParams) (domain.Project, error) {
	ws, err := s.Workspaces.Resolve(ctx, callerID, workspaceIDOrSlug)
	if err != nil {
		return domain.Project{}, err
	}
	if ws.OwnerID != callerID {
		return domain.Project{}, ErrForbidden
	}

	p, err := s.Get(ctx, callerID, workspaceIDOrSlug, projectIDOrSlug)
	if err != nil {
		return domain.Project{}, err
	}

	if name := strings.TrimSpace(params.Name); name != "" && name != p.Name {
		slug := slugx.Slugify(name)
		if slug == "" {
			return domain.Project{}, ErrInvalidName
		}
		p.Name = name
		p.Slug = slug
	}
	if params.Description != "" {
		p.Description = strings.TrimSpace(params.Description)
	}
	if params.Icon != "" {
		p.Icon = params.Icon
	}
	if params.Background != "" {
		p.Background = params.Background
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.Store.Projects().Update(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Project{}, ErrSlugTaken
		}
		return domain.Project{}, err
	}
	return p, nil
}

// Delete removes a project. Workspace owner only.
func (s *ProjectService) Delete(ctx context.Context, callerID, workspaceIDOrSlug, projectIDOrSlug string) error {
	ws, err := s.Workspaces.Resolve(ctx, callerID, workspaceIDOrSlug)
	if err != nil {
		return err
	}
	if ws.OwnerID != callerID {
		return ErrForbidden
	}

	p, err := s.Get(ctx, callerID, workspaceIDOrSlug, projectIDOrSlug)
	if err != nil {
		return err
	}
	return s.Store.Projects().Delete(ctx, p.ID)
}
