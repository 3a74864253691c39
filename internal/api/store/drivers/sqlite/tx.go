package sqlite

import (
	"database/sql"

	"github.com/taskerra/taskerra/internal/api/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.UserRepo                   { return &usersRepo{db: t.tx} }
func (t *txStore) Sessions() store.SessionRepo             { return &sessionsRepo{db: t.tx} }
func (t *txStore) RecoveryTokens() store.RecoveryTokenRepo { return &recoveryTokensRepo{db: t.tx} }
func (t *txStore) Workspaces() store.WorkspaceRepo         { return &workspacesRepo{db: t.tx} }
func (t *txStore) Projects() store.ProjectRepo             { return &projectsRepo{db: t.tx} }
func (t *txStore) Tasks() store.TaskRepo                   { return &tasksRepo{db: t.tx} }
