package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskerra/taskerra/internal/api/domain"
)

type tasksRepo struct {
	db dbtx
}

func (r *tasksRepo) Create(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, due_date, project_id, assignee_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), t.ProjectID, mapOptionalString(t.AssigneeID),
		t.CreatedAt, t.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *tasksRepo) GetByID(ctx context.Context, id string) (domain.Task, error) {
	var (
		t        domain.Task
		dueDate  sql.NullTime
		assignee sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, priority, due_date, project_id, assignee_id, created_at, updated_at
		FROM tasks WHERE id = ?`, id,
	).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&dueDate, &t.ProjectID, &assignee, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	t.DueDate = mapNullTimePtr(dueDate)
	t.AssigneeID = mapNullStringPtr(assignee)
	return t, nil
}

func (r *tasksRepo) ListForProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, status, priority, due_date, project_id, assignee_id, created_at, updated_at
		FROM tasks WHERE project_id = ?
		ORDER BY created_at`, projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		var (
			t        domain.Task
			dueDate  sql.NullTime
			assignee sql.NullString
		)
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&dueDate, &t.ProjectID, &assignee, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.DueDate = mapNullTimePtr(dueDate)
		t.AssigneeID = mapNullStringPtr(assignee)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tasksRepo) Update(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, assignee_id = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), mapOptionalString(t.AssigneeID), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *tasksRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
