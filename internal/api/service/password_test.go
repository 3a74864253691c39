package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/pkg/cryptox"
	"github.com/taskerra/taskerra/pkg/resettoken"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string // reset URLs, in order
	err  error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, _, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, resetURL)
	return nil
}

func TestRequestReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	mailer := &fakeMailer{}
	svc := &PasswordService{Store: st, Mailer: mailer, ResetBaseURL: "https://app.example.com/reset"}
	createTestUser(t, st, "forgot@example.com", "password-123")

	t.Run("persists token and mails the link", func(t *testing.T) {
		require.NoError(t, svc.RequestReset(ctx, "forgot@example.com"))
		require.Len(t, mailer.sent, 1)
		require.Contains(t, mailer.sent[0], "https://app.example.com/reset?token=")

		tokens, err := st.RecoveryTokens().DeleteOlderThan(ctx, time.Now().UTC().Add(time.Minute))
		require.NoError(t, err)
		require.EqualValues(t, 1, tokens)
	})

	t.Run("unknown email is a distinct error", func(t *testing.T) {
		err := svc.RequestReset(ctx, "ghost@example.com")
		require.ErrorIs(t, err, ErrUnknownEmail)
	})

	t.Run("mail failure propagates but the token row stays", func(t *testing.T) {
		failing := &PasswordService{
			Store:        st,
			Mailer:       &fakeMailer{err: errors.New("smtp down")},
			ResetBaseURL: "https://app.example.com/reset",
		}
		require.Error(t, failing.RequestReset(ctx, "forgot@example.com"))

		n, err := st.RecoveryTokens().DeleteOlderThan(ctx, time.Now().UTC().Add(time.Minute))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	mailer := &fakeMailer{}
	svc := &PasswordService{Store: st, Mailer: mailer, ResetBaseURL: "https://app.example.com/reset"}
	sessions := &SessionService{Store: st, TokenPrefix: "dev"}

	mintToken := func(t *testing.T, userID string, issuedAt time.Time) string {
		t.Helper()
		nonce, err := cryptox.RandomHex(cryptox.NonceSize)
		require.NoError(t, err)
		token := resettoken.Encode(userID, issuedAt, nonce)
		require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
			Token:     token,
			UserID:    userID,
			CreatedAt: issuedAt,
		}))
		return token
	}

	t.Run("happy path changes the password once", func(t *testing.T) {
		user := createTestUser(t, st, "reset@example.com", "old-password-1")
		token := mintToken(t, user.ID, time.Now().UTC())

		require.NoError(t, svc.ResetPassword(ctx, token, "new-password-1"))

		_, _, err := sessions.SignIn(ctx, "reset@example.com", "old-password-1")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = sessions.SignIn(ctx, "reset@example.com", "new-password-1")
		require.NoError(t, err)

		// Single use: the same token is now unknown.
		err = svc.ResetPassword(ctx, token, "another-password")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("expired token rejected generically", func(t *testing.T) {
		user := createTestUser(t, st, "expired@example.com", "old-password-1")
		token := mintToken(t, user.ID, time.Now().UTC().Add(-25*time.Hour))

		err := svc.ResetPassword(ctx, token, "new-password-1")
		require.ErrorIs(t, err, ErrInvalidResetToken)

		// Password unchanged.
		_, _, err = sessions.SignIn(ctx, "expired@example.com", "old-password-1")
		require.NoError(t, err)
	})

	t.Run("row with expires_at set is rejected", func(t *testing.T) {
		user := createTestUser(t, st, "quirk@example.com", "old-password-1")
		nonce, err := cryptox.RandomHex(cryptox.NonceSize)
		require.NoError(t, err)

		now := time.Now().UTC()
		future := now.Add(time.Hour)
		token := resettoken.Encode(user.ID, now, nonce)
		require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
			Token:     token,
			UserID:    user.ID,
			CreatedAt: now,
			ExpiresAt: &future,
		}))

		err = svc.ResetPassword(ctx, token, "new-password-1")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("tampered token leaves the password unchanged", func(t *testing.T) {
		user := createTestUser(t, st, "tamper@example.com", "old-password-1")

		// A structurally broken token persisted verbatim. The row lookup
		// succeeds but the decode fails.
		broken := "not-base64url-!!!"
		require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
			Token:     broken,
			UserID:    user.ID,
			CreatedAt: time.Now().UTC(),
		}))

		err := svc.ResetPassword(ctx, broken, "new-password-1")
		require.ErrorIs(t, err, ErrInvalidResetToken)

		_, _, err = sessions.SignIn(ctx, "tamper@example.com", "old-password-1")
		require.NoError(t, err)
	})

	t.Run("decoded user must match the stored row", func(t *testing.T) {
		alice := createTestUser(t, st, "alice-mismatch@example.com", "old-password-1")
		bob := createTestUser(t, st, "bob-mismatch@example.com", "old-password-1")

		nonce, err := cryptox.RandomHex(cryptox.NonceSize)
		require.NoError(t, err)

		now := time.Now().UTC()
		token := resettoken.Encode(alice.ID, now, nonce)
		require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
			Token:     token,
			UserID:    bob.ID, // row disagrees with the encoded identity
			CreatedAt: now,
		}))

		err = svc.ResetPassword(ctx, token, "new-password-1")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("token for a deleted user surfaces unknown user", func(t *testing.T) {
		ghostID := "01JGHOSTUSER0000000000000"
		nonce, err := cryptox.RandomHex(cryptox.NonceSize)
		require.NoError(t, err)

		now := time.Now().UTC()
		token := resettoken.Encode(ghostID, now, nonce)
		require.NoError(t, st.RecoveryTokens().Create(ctx, domain.RecoveryToken{
			Token:     token,
			UserID:    ghostID,
			CreatedAt: now,
		}))

		err = svc.ResetPassword(ctx, token, "new-password-1")
		require.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("unknown token string rejected", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "bm90LWEtcmVhbC10b2tlbg", "new-password-1")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})
}
