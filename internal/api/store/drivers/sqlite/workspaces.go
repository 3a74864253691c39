package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
)

type workspacesRepo struct {
	db dbtx
}

func (r *workspacesRepo) Create(ctx context.Context, w domain.Workspace) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, slug, description, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Slug, w.Description, w.OwnerID, w.CreatedAt, w.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *workspacesRepo) GetByID(ctx context.Context, id string) (domain.Workspace, error) {
	return r.get(ctx, `
		SELECT id, name, slug, description, owner_id, created_at, updated_at
		FROM workspaces WHERE id = ?`, id)
}

func (r *workspacesRepo) GetBySlug(ctx context.Context, slug string) (domain.Workspace, error) {
	return r.get(ctx, `
		SELECT id, name, slug, description, owner_id, created_at, updated_at
		FROM workspaces WHERE slug = ?`, slug)
}

func (r *workspacesRepo) get(ctx context.Context, query string, arg any) (domain.Workspace, error) {
	var w domain.Workspace
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&w.ID, &w.Name, &w.Slug, &w.Description, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return domain.Workspace{}, mapNotFound(err)
	}
	return w, nil
}

func (r *workspacesRepo) ListForUser(ctx context.Context, userID, nameQuery string, offset, limit int) ([]domain.WorkspaceSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.name, w.slug, w.description, w.owner_id, w.created_at, w.updated_at,
		       u.id, u.name, u.email,
		       (SELECT COUNT(*) FROM workspace_members c WHERE c.workspace_id = w.id)
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		JOIN users u ON u.id = w.owner_id
		WHERE m.user_id = ?
		  AND (? = '' OR w.name LIKE '%' || ? || '%' COLLATE NOCASE)
		ORDER BY w.created_at
		LIMIT ? OFFSET ?`,
		userID, nameQuery, nameQuery, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WorkspaceSummary
	for rows.Next() {
		var s domain.WorkspaceSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Slug, &s.Description, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt,
			&s.Owner.ID, &s.Owner.Name, &s.Owner.Email,
			&s.TotalMembers,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *workspacesRepo) Update(ctx context.Context, w domain.Workspace) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces SET name = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		w.Name, w.Slug, w.Description, w.UpdatedAt, w.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *workspacesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *workspacesRepo) AddMember(ctx context.Context, membershipID, workspaceID, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace_members (id, workspace_id, user_id, last_accessed_at)
		VALUES (?, ?, ?, ?)`,
		membershipID, workspaceID, userID, at,
	)
	return mapConflict(err)
}

func (r *workspacesRepo) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, u.id, u.name, u.email, m.last_accessed_at
		FROM workspace_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = ?
		ORDER BY u.name`, workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		var (
			m        domain.Member
			accessed sql.NullTime
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &accessed); err != nil {
			return nil, err
		}
		m.LastAccessedAt = mapNullTimePtr(accessed)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *workspacesRepo) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM workspace_members
		WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *workspacesRepo) TouchMember(ctx context.Context, workspaceID, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE workspace_members SET last_accessed_at = ?
		WHERE workspace_id = ? AND user_id = ?`,
		at, workspaceID, userID,
	)
	return err
}
