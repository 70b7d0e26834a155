package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/model"
)

// User exposes the user directory: profile reads, username setup, the
// disable/enable flag, and per-user daily limit overrides.
type User struct {
	store  model.UserStore
	logger *logger.Logger
}

func NewUser(store model.UserStore, logger *logger.Logger) *User {
	return &User{
		store:  store,
		logger: logger,
	}
}

func (s *User) GetProfile(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// SetUsername claims a username for the user. Usernames are stored
// lowercased and must be unique.
func (s *User) SetUsername(ctx context.Context, id uuid.UUID, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return model.ErrInvalidUsername
	}

	holder, err := s.store.GetByUsername(ctx, username)
	if err == nil {
		if holder.ID == id {
			return nil
		}
		return model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to check username availability: %w", err)
	}

	// A claim that lands between the check and the write still surfaces
	// as ErrUsernameTaken through the unique index.
	if err := s.store.SetUsername(ctx, id, username); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) || errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to set username: %w", err)
	}
	return nil
}

// Disable deactivates the account. Deactivation is a flag, never a delete;
// the aura account and its history stay intact.
func (s *User) Disable(ctx context.Context, id uuid.UUID) error {
	if err := s.store.SetDisabled(ctx, id, true); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to disable user: %w", err)
	}
	s.logger.Info("user disabled", "user_id", id)
	return nil
}

// Enable reactivates a previously disabled account.
func (s *User) Enable(ctx context.Context, id uuid.UUID) error {
	if err := s.store.SetDisabled(ctx, id, false); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to enable user: %w", err)
	}
	s.logger.Info("user enabled", "user_id", id)
	return nil
}

// SetDailyLimit sets or clears the per-user daily aura limit override.
// A nil limit reverts the user to the configured base limit.
func (s *User) SetDailyLimit(ctx context.Context, id uuid.UUID, limit *int64) error {
	if limit != nil && *limit <= 0 {
		return model.ErrNegativeAmount
	}

	if err := s.store.SetDailyLimit(ctx, id, limit); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to set daily limit: %w", err)
	}
	return nil
}
