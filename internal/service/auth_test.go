package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/mocks"
	"github.com/auraboard/auraboard-server/internal/model"
)

func newTestTokenService(t *testing.T) (*TokenService, *mocks.TokenManager, *mocks.RefreshTokenStore) {
	t.Helper()
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	return NewTokenService(manager, store, logger.New(0)), manager, store
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	auraStore := &mocks.AuraStore{}
	tokens, manager, refreshStore := newTestTokenService(t)

	var createdID uuid.UUID
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		createdID = u.ID
		return u.Email == "ada@example.com" && u.Username == "ada" && u.Provider == "email" && u.PasswordHash != ""
	})).Return(model.User{ID: uuid.New(), Email: "ada@example.com", Username: "ada"}, nil)
	auraStore.On("Initialize", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	manager.On("GenerateAccessToken", mock.Anything).Return("access", nil)
	manager.On("GenerateRefreshToken", mock.Anything).Return("refresh", "jti-1", nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a := NewAuth(userStore, auraStore, tokens, logger.New(0))

	user, access, refresh, err := a.Register(ctx, RegisterParams{
		Email:    " Ada@Example.com ",
		Username: " Ada ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "access", access)
	assert.Equal(t, "refresh", refresh)
	assert.NotEqual(t, uuid.Nil, createdID)
	auraStore.AssertExpectations(t)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	auraStore := &mocks.AuraStore{}
	tokens, _, _ := newTestTokenService(t)

	userStore.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	a := NewAuth(userStore, auraStore, tokens, logger.New(0))

	_, _, _, err := a.Register(ctx, RegisterParams{Email: "taken@example.com", Password: "pw"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
	auraStore.AssertNotCalled(t, "Initialize")
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens, manager, refreshStore := newTestTokenService(t)

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	userStore.On("GetByEmail", mock.Anything, "ada@example.com").Return(model.User{
		ID:           userID,
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}, nil)
	userStore.On("TouchLastLogin", mock.Anything, userID).Return(nil)
	manager.On("GenerateAccessToken", userID).Return("access", nil)
	manager.On("GenerateRefreshToken", userID).Return("refresh", "jti-1", nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a := NewAuth(userStore, &mocks.AuraStore{}, tokens, logger.New(0))

	user, access, _, err := a.Login(ctx, "Ada@Example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "access", access)
	userStore.AssertNotCalled(t, "SetDisabled")
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens, _, _ := newTestTokenService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	userStore.On("GetByEmail", mock.Anything, "ada@example.com").Return(model.User{
		ID:           uuid.New(),
		PasswordHash: string(hash),
	}, nil)

	a := NewAuth(userStore, &mocks.AuraStore{}, tokens, logger.New(0))

	_, _, _, err = a.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens, _, _ := newTestTokenService(t)

	userStore.On("GetByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, model.ErrNotFound)

	a := NewAuth(userStore, &mocks.AuraStore{}, tokens, logger.New(0))

	_, _, _, err := a.Login(ctx, "ghost@example.com", "pw")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_ReactivatesDisabledUser(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokens, manager, refreshStore := newTestTokenService(t)

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	userStore.On("GetByEmail", mock.Anything, "ada@example.com").Return(model.User{
		ID:           userID,
		PasswordHash: string(hash),
		Disabled:     true,
	}, nil)
	userStore.On("SetDisabled", mock.Anything, userID, false).Return(nil)
	userStore.On("TouchLastLogin", mock.Anything, userID).Return(nil)
	manager.On("GenerateAccessToken", userID).Return("access", nil)
	manager.On("GenerateRefreshToken", userID).Return("refresh", "jti-1", nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a := NewAuth(userStore, &mocks.AuraStore{}, tokens, logger.New(0))

	user, _, _, err := a.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.False(t, user.Disabled)
	userStore.AssertExpectations(t)
}
