package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/store"
	"github.com/taskerra/taskerra/pkg/cryptox"
	"github.com/taskerra/taskerra/pkg/resettoken"
	"github.com/taskerra/taskerra/pkg/slogx"
)

var (
	// ErrInvalidResetToken covers every redemption failure: unknown token,
	// malformed token, expired token, mismatched user. Callers must not be
	// able to tell which one happened.
	ErrInvalidResetToken = errors.New("invalid_reset_token")

	// ErrUnknownEmail is surfaced when a reset is requested for an email
	// that has no account.
	ErrUnknownEmail = errors.New("unknown_email")

	// ErrUnknownUser is surfaced when a structurally valid token points at
	// an account that no longer exists.
	ErrUnknownUser = errors.New("unknown_user")
)

// Mailer delivers password-reset email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// PasswordService runs the forgot/reset flow around pkg/resettoken.
type PasswordService struct {
	Store        store.Store
	Mailer       Mailer
	ResetBaseURL string // page the emailed link points at; token appended as a query param
}

// RequestReset mints a recovery token for the account behind email, persists
// it, and mails the reset link. The token row is written before the mail is
// sent and stays behind even when sending fails, so the user can retry
// delivery without the token changing underneath them.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	nonce, err := cryptox.RandomHex(cryptox.NonceSize)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	token := resettoken.Encode(user.ID, now, nonce)

	if err := s.Store.RecoveryTokens().Create(ctx, domain.RecoveryToken{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	l.Info("recovery token issued", slog.String("user_id", user.ID))

	link := s.ResetBaseURL + "?token=" + url.QueryEscape(token)
	if err := s.Mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		l.Error("reset mail delivery failed", slog.String("user_id", user.ID), slog.Any("error", err))
		return err
	}
	return nil
}

// ResetPassword redeems a recovery token. The stored row and the decoded
// token contents must both check out; the password update and the token
// deletion commit atomically so a token can be redeemed at most once.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	l := slogx.FromContext(ctx)

	row, err := s.Store.RecoveryTokens().Get(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	// Rows are minted without expires_at; one that has it set did not come
	// from us in its current shape.
	if row.ExpiresAt != nil {
		return ErrInvalidResetToken
	}

	decoded, ok := resettoken.Decode(row.Token)
	if !ok || decoded.Expired {
		return ErrInvalidResetToken
	}
	if decoded.UserID != row.UserID {
		l.Warn("recovery token user mismatch", slog.String("row_user_id", row.UserID))
		return ErrInvalidResetToken
	}

	user, err := s.Store.Users().GetByID(ctx, decoded.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash, now); err != nil {
			return err
		}
		return tx.RecoveryTokens().Delete(ctx, row.Token)
	})
	if err != nil {
		return err
	}

	l.Info("password reset", slog.String("user_id", user.ID))
	return nil
}
