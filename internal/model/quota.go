package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QuotaStore defines the conditional writes backing the quota tracker. All
// mutations are storage-level atomic: Initialize only fires when the state
// is absent, Reset only when last_reset still matches prevReset, and
// AddSpent is a server-side increment.
type QuotaStore interface {
	Get(ctx context.Context, userID uuid.UUID) (QuotaState, error)
	Initialize(ctx context.Context, userID uuid.UUID, now time.Time) error
	Reset(ctx context.Context, userID uuid.UUID, now, prevReset time.Time) (bool, error)
	AddSpent(ctx context.Context, userID uuid.UUID, amount int64) error
}

// QuotaState is the per-actor daily spend state.
type QuotaState struct {
	UserID     uuid.UUID
	DailyLimit *int64     // nil means the configured base limit
	DailySpent int64
	LastReset  *time.Time
}

// QuotaTracker gates how much aura an actor may distribute per calendar day.
// CanSpend is a pure admission check after a freshness pass; Debit does not
// re-validate against the limit, so callers run CanSpend and Debit as a
// pair around the balance mutation.
type QuotaTracker interface {
	EnsureFresh(ctx context.Context, actorID uuid.UUID) (QuotaState, error)
	CanSpend(ctx context.Context, actorID uuid.UUID, amount int64) (bool, error)
	Debit(ctx context.Context, actorID uuid.UUID, amount int64) error
	Remaining(ctx context.Context, actorID uuid.UUID) (int64, error)
}
