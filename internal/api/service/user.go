package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/taskerra/taskerra/internal/api/domain"
	"github.com/taskerra/taskerra/internal/api/store"
	"github.com/taskerra/taskerra/pkg/cryptox"
	"github.com/taskerra/taskerra/pkg/idx"
	"github.com/taskerra/taskerra/pkg/slogx"
)

const (
	MinNameLength     = 5
	MinPasswordLength = 8
)

var (
	ErrEmailTaken     = errors.New("email_taken")
	ErrUserNotFound   = errors.New("user_not_found")
	ErrInvalidProfile = errors.New("invalid_profile")
	ErrForbidden      = errors.New("forbidden")
)

type UserService struct {
	Store store.Store
}

// Register creates an account and returns its id.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(name) < MinNameLength || len(password) < MinPasswordLength {
		return "", ErrInvalidProfile
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidProfile
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return user.ID, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile changes a user's name and email. Users may only edit
// themselves.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, userID, name, email string) (domain.User, error) {
	if callerID != userID {
		return domain.User{}, ErrForbidden
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if len(name) < MinNameLength {
		return domain.User{}, ErrInvalidProfile
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, ErrInvalidProfile
	}

	user.Name = name
	user.Email = email
	user.UpdatedAt = time.Now().UTC()

	if err := s.Store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return user, nil
}
