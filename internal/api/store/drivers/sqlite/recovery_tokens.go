package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
)

type recoveryTokensRepo struct {
	db dbtx
}

func (r *recoveryTokensRepo) Create(ctx context.Context, t domain.RecoveryToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recovery_tokens (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		t.Token, t.UserID, t.CreatedAt, mapOptionalTime(t.ExpiresAt),
	)
	return mapConflict(err)
}

func (r *recoveryTokensRepo) Get(ctx context.Context, token string) (domain.RecoveryToken, error) {
	var (
		t         domain.RecoveryToken
		expiresAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at
		FROM recovery_tokens WHERE token = ?`, token,
	).Scan(&t.Token, &t.UserID, &t.CreatedAt, &expiresAt)
	if err != nil {
		return domain.RecoveryToken{}, mapNotFound(err)
	}
	t.ExpiresAt = mapNullTimePtr(expiresAt)
	return t, nil
}

func (r *recoveryTokensRepo) Delete(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recovery_tokens WHERE token = ?`, token)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *recoveryTokensRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recovery_tokens WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
