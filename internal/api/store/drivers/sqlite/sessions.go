package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/store"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, created_at, invalidated_at)
		VALUES (?, ?, ?, ?)`,
		s.ID, s.UserID, s.CreatedAt, mapOptionalTime(s.InvalidatedAt),
	)
	return mapConflict(err)
}

func (r *sessionsRepo) GetByID(ctx context.Context, id string) (domain.Session, error) {
	var (
		s             domain.Session
		invalidatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, invalidated_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.UserID, &s.CreatedAt, &invalidatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.InvalidatedAt = mapNullTimePtr(invalidatedAt)
	return s, nil
}

func (r *sessionsRepo) Invalidate(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET invalidated_at = ?
		WHERE id = ? AND invalidated_at IS NULL`,
		at, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sessionsRepo) InvalidateAllForUser(ctx context.Context, userID string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET invalidated_at = ?
		WHERE user_id = ? AND invalidated_at IS NULL`,
		at, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ store.SessionRepo = (*sessionsRepo)(nil)
