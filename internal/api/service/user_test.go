package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	t.Run("creates a user", func(t *testing.T) {
		id, err := svc.Register(ctx, "Grace Hopper", "grace@example.com", "password-123")
		require.NoError(t, err)
		require.NotEmpty(t, id)

		user, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "grace@example.com", user.Email)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, "Grace Clone", "grace@example.com", "password-123")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("email is normalized to lower case", func(t *testing.T) {
		_, err := svc.Register(ctx, "Grace Again", "GRACE@example.com", "password-123")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects short name, short password, bad email", func(t *testing.T) {
		_, err := svc.Register(ctx, "abc", "ok@example.com", "password-123")
		require.ErrorIs(t, err, ErrInvalidProfile)

		_, err = svc.Register(ctx, "Valid Name", "ok@example.com", "short")
		require.ErrorIs(t, err, ErrInvalidProfile)

		_, err = svc.Register(ctx, "Valid Name", "not-an-email", "password-123")
		require.ErrorIs(t, err, ErrInvalidProfile)
	})
}

func TestUserUpdateProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	alice := createTestUser(t, st, "alice-update@example.com", "password-123")
	bob := createTestUser(t, st, "bob-update@example.com", "password-123")

	t.Run("self update succeeds", func(t *testing.T) {
		got, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, "Alice Renamed", "alice-new@example.com")
		require.NoError(t, err)
		require.Equal(t, "Alice Renamed", got.Name)
		require.Equal(t, "alice-new@example.com", got.Email)
	})

	t.Run("editing someone else is forbidden", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, bob.ID, "Hijacked", "evil@example.com")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("taking another user's email conflicts", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, "Alice Renamed", "bob-update@example.com")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("unknown user surfaces not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "01JNOSUCHUSER000000000000")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
