package sqlite

import (
	"context"

	"github.com/taskerra/taskerra/internal/api/domain"
)

type projectsRepo struct {
	db dbtx
}

func (r *projectsRepo) Create(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, slug, description, icon, background, workspace_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Slug, p.Description, p.Icon, p.Background, p.WorkspaceID, p.CreatedAt, p.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *projectsRepo) GetByID(ctx context.Context, id string) (domain.Project, error) {
	return r.get(ctx, `
		SELECT id, name, slug, description, icon, background, workspace_id, created_at, updated_at
		FROM projects WHERE id = ?`, id)
}

func (r *projectsRepo) GetBySlug(ctx context.Context, workspaceID, slug string) (domain.Project, error) {
	return r.get(ctx, `
		SELECT id, name, slug, description, icon, background, workspace_id, created_at, updated_at
		FROM projects WHERE workspace_id = ? AND slug = ?`, workspaceID, slug)
}

func (r *projectsRepo) get(ctx context.Context, query string, args ...any) (domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Icon, &p.Background,
		&p.WorkspaceID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) ListForWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, description, icon, background, workspace_id, created_at, updated_at
		FROM projects WHERE workspace_id = ?
		ORDER BY created_at`, workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Icon, &p.Background,
			&p.WorkspaceID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectsRepo) Update(ctx context.Context, p domain.Project) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, slug = ?, description = ?, icon = ?, background = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Slug, p.Description, p.Icon, p.Background, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *projectsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
