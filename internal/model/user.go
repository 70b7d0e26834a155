package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user profiles.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	SetUsername(ctx context.Context, id uuid.UUID, username string) error
	SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error
	SetDailyLimit(ctx context.Context, id uuid.UUID, limit *int64) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user profile. The daily quota fields live on the
// user row but are owned by the quota tracker, which mutates them only
// through QuotaStore.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	DisplayName  string
	PhotoURL     string
	Provider     string
	Disabled     bool
	DailyLimit   *int64     // per-user override, nil means the configured base limit
	DailySpent   int64
	LastReset    *time.Time // nil until the quota state is first initialized
	CreatedAt    time.Time
	LastLogin    time.Time
	UpdatedAt    time.Time
}
