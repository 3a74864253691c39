package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/store"
	"github.com/taskerra/taskerra/pkg/cryptox"
	"github.com/taskerra/taskerra/pkg/slogx"
)

const (
	// DefaultSessionLifetime is the absolute session window. Sessions die
	// this long after creation regardless of activity.
	DefaultSessionLifetime = 48 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidSession     = errors.New("invalid_session")
)

// SessionService issues and validates opaque browser sessions. The session id
// itself is the bearer token; nothing is signed or derived.
type SessionService struct {
	Store       store.Store
	TokenPrefix string        // diagnostic env tag baked into every token
	Lifetime    time.Duration // zero means DefaultSessionLifetime
}

func (s *SessionService) lifetime() time.Duration {
	if s.Lifetime <= 0 {
		return DefaultSessionLifetime
	}
	return s.Lifetime
}

// SignIn verifies the email/password pair and issues a fresh session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("sign-in rejected", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Issue(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Issue mints a session token for the user. Any previously live sessions are
// invalidated first, inside the same transaction as the insert, so at most
// one session is live per user at any point.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, error) {
	token, err := cryptox.NewSessionToken(s.TokenPrefix)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Sessions().InvalidateAllForUser(ctx, userID, now); err != nil {
			return err
		}
		return tx.Sessions().Create(ctx, domain.Session{
			ID:        token,
			UserID:    userID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("session issued", slog.String("user_id", userID))
	return token, nil
}

// Authenticate resolves a bearer token to a user id. Every failure mode
// collapses into ErrInvalidSession. The window is absolute: a session is dead
// once its age reaches the lifetime, active or not.
func (s *SessionService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	sess, err := s.Store.Sessions().GetByID(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}

	if sess.Invalidated() {
		return "", ErrInvalidSession
	}
	if time.Now().UTC().Sub(sess.CreatedAt) >= s.lifetime() {
		return "", ErrInvalidSession
	}

	return sess.UserID, nil
}

// Invalidate kills a single session by id.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	err := s.Store.Sessions().Invalidate(ctx, token, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidSession
	}
	return err
}

// SignOut invalidates every live session the user has. Idempotent.
func (s *SessionService) SignOut(ctx context.Context, userID string) error {
	n, err := s.Store.Sessions().InvalidateAllForUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("signed out", slog.String("user_id", userID), slog.Int64("sessions", n))
	return nil
}
