package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when a uniqueness constraint would be
	// violated by an insert.
	ErrAlreadyExists = errors.New("record already exists")
)

// Store is the root persistence interface. Drivers return repository views
// over a shared handle; WithTx runs fn against repositories bound to a single
// transaction, committing when fn returns nil and rolling back otherwise.
type Store interface {
	Users() UserRepo
	Sessions() SessionRepo
	RecoveryTokens() RecoveryTokenRepo
	Workspaces() WorkspaceRepo
	Projects() ProjectRepo
	Tasks() TaskRepo

	WithTx(ctx context.Context, fn func(tx Tx) error) error

	ApplyMigrations() error
	Ping(ctx context.Context) error
	Close() error
}

// Tx exposes the same repositories scoped to one transaction.
type Tx interface {
	Users() UserRepo
	Sessions() SessionRepo
	RecoveryTokens() RecoveryTokenRepo
	Workspaces() WorkspaceRepo
	Projects() ProjectRepo
	Tasks() TaskRepo
}

type UserRepo interface {
	Create(ctx context.Context, u domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, u domain.User) error
	UpdatePasswordHash(ctx context.Context, id, hash string, updatedAt time.Time) error
}

type SessionRepo interface {
	Create(ctx context.Context, s domain.Session) error
	GetByID(ctx context.Context, id string) (domain.Session, error)

	// Invalidate marks a single live session dead. ErrNotFound when the
	// session does not exist or is already invalidated.
	Invalidate(ctx context.Context, id string, at time.Time) error

	// InvalidateAllForUser marks every live session of a user dead. It is
	// idempotent and reports how many rows were touched.
	InvalidateAllForUser(ctx context.Context, userID string, at time.Time) (int64, error)
}

type RecoveryTokenRepo interface {
	Create(ctx context.Context, t domain.RecoveryToken) error
	Get(ctx context.Context, token string) (domain.RecoveryToken, error)
	Delete(ctx context.Context, token string) error

	// DeleteOlderThan removes tokens created before the cutoff, returning
	// the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type WorkspaceRepo interface {
	Create(ctx context.Context, w domain.Workspace) error
	GetByID(ctx context.Context, id string) (domain.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (domain.Workspace, error)

	// ListForUser returns workspaces the user is a member of, optionally
	// filtered by a case-insensitive name match, ordered by creation time.
	ListForUser(ctx context.Context, userID, nameQuery string, offset, limit int) ([]domain.WorkspaceSummary, error)
	Update(ctx context.Context, w domain.Workspace) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, membershipID, workspaceID, userID string, at time.Time) error
	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)
	TouchMember(ctx context.Context, workspaceID, userID string, at time.Time) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p domain.Project) error
	GetByID(ctx context.Context, id string) (domain.Project, error)
	GetBySlug(ctx context.Context, workspaceID, slug string) (domain.Project, error)
	ListForWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error)
	Update(ctx context.Context, p domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t domain.Task) error
	GetByID(ctx context.Context, id string) (domain.Task, error)
	ListForProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task) error
	Delete(ctx context.Context, id string) error
}
