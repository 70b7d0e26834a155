// Package mocks provides testify mock doubles for the store and token
// interfaces defined in the model package.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/auraboard/auraboard-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetUsername(ctx context.Context, id uuid.UUID, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

func (m *UserStore) SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error {
	args := m.Called(ctx, id, disabled)
	return args.Error(0)
}

func (m *UserStore) SetDailyLimit(ctx context.Context, id uuid.UUID, limit *int64) error {
	args := m.Called(ctx, id, limit)
	return args.Error(0)
}

func (m *UserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AuraStore is a mock of model.AuraStore.
type AuraStore struct {
	mock.Mock
}

func (m *AuraStore) Initialize(ctx context.Context, uid uuid.UUID, now time.Time) error {
	args := m.Called(ctx, uid, now)
	return args.Error(0)
}

func (m *AuraStore) GetByUID(ctx context.Context, uid uuid.UUID) (model.AuraAccount, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(model.AuraAccount), args.Error(1)
}

func (m *AuraStore) ApplyChange(ctx context.Context, change model.AuraChange) (int64, error) {
	args := m.Called(ctx, change)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AuraStore) ListRanked(ctx context.Context) ([]model.RankedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RankedAccount), args.Error(1)
}

// QuotaStore is a mock of model.QuotaStore.
type QuotaStore struct {
	mock.Mock
}

func (m *QuotaStore) Get(ctx context.Context, userID uuid.UUID) (model.QuotaState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.QuotaState), args.Error(1)
}

func (m *QuotaStore) Initialize(ctx context.Context, userID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

func (m *QuotaStore) Reset(ctx context.Context, userID uuid.UUID, now, prevReset time.Time) (bool, error) {
	args := m.Called(ctx, userID, now, prevReset)
	return args.Bool(0), args.Error(1)
}

func (m *QuotaStore) AddSpent(ctx context.Context, userID uuid.UUID, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// QuotaTracker is a mock of model.QuotaTracker.
type QuotaTracker struct {
	mock.Mock
}

func (m *QuotaTracker) EnsureFresh(ctx context.Context, actorID uuid.UUID) (model.QuotaState, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(model.QuotaState), args.Error(1)
}

func (m *QuotaTracker) CanSpend(ctx context.Context, actorID uuid.UUID, amount int64) (bool, error) {
	args := m.Called(ctx, actorID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *QuotaTracker) Debit(ctx context.Context, actorID uuid.UUID, amount int64) error {
	args := m.Called(ctx, actorID, amount)
	return args.Error(0)
}

func (m *QuotaTracker) Remaining(ctx context.Context, actorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(int64), args.Error(1)
}

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}
