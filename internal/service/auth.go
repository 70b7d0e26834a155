package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/model"
)

// RegisterParams contains parameters to register a new user.
type RegisterParams struct {
	Email       string
	Username    string
	Password    string
	DisplayName string
	PhotoURL    string
}

// Auth handles registration and login. Registering a user also creates the
// user's aura account, so every profile has a ledger entry from day one.
type Auth struct {
	userStore model.UserStore
	auraStore model.AuraStore
	tokens    *TokenService
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	auraStore model.AuraStore,
	tokens *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		auraStore: auraStore,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a profile and its aura account, then issues a token pair.
func (s *Auth) Register(ctx context.Context, params RegisterParams) (model.User, string, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		Username:     strings.ToLower(strings.TrimSpace(params.Username)),
		PasswordHash: string(hash),
		DisplayName:  params.DisplayName,
		PhotoURL:     params.PhotoURL,
		Provider:     "email",
	}

	user, err = s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrUsernameTaken) {
			return model.User{}, "", "", err
		}
		return model.User{}, "", "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.auraStore.Initialize(ctx, user.ID, time.Now()); err != nil {
		return model.User{}, "", "", fmt.Errorf("failed to initialize aura account: %w", err)
	}

	access, refresh, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return model.User{}, "", "", fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	return user, access, refresh, nil
}

// Login verifies credentials and issues a token pair. Logging in to a
// deactivated account reactivates it.
func (s *Auth) Login(ctx context.Context, email, password string) (model.User, string, string, error) {
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, "", "", model.ErrInvalidCredentials
		}
		return model.User{}, "", "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, "", "", model.ErrInvalidCredentials
	}

	if user.Disabled {
		if err := s.userStore.SetDisabled(ctx, user.ID, false); err != nil {
			return model.User{}, "", "", fmt.Errorf("failed to reactivate user: %w", err)
		}
		user.Disabled = false
		s.logger.Info("user reactivated on login", "user_id", user.ID)
	}

	if err := s.userStore.TouchLastLogin(ctx, user.ID); err != nil {
		return model.User{}, "", "", fmt.Errorf("failed to update last login: %w", err)
	}

	access, refresh, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return model.User{}, "", "", fmt.Errorf("failed to issue tokens: %w", err)
	}

	return user, access, refresh, nil
}
