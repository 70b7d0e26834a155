package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountCreationReason annotates the synthetic history entry written when
// an aura account is created.
const AccountCreationReason = "Account Creation"

// AuraStore defines persistence operations for aura accounts. ApplyChange
// must update the balance and append the matching history entry as one
// atomic write; a concurrent reader never observes one without the other.
type AuraStore interface {
	Initialize(ctx context.Context, uid uuid.UUID, now time.Time) error
	GetByUID(ctx context.Context, uid uuid.UUID) (AuraAccount, error)
	ApplyChange(ctx context.Context, change AuraChange) (int64, error)
	ListRanked(ctx context.Context) ([]RankedAccount, error)
}

// AuraAccount is the authoritative balance plus its append-only history for
// one user. The balance always equals the sum of the history changes.
type AuraAccount struct {
	UID         uuid.UUID
	Balance     int64
	LastUpdated time.Time
	CreatedAt   time.Time
	History     []AuraHistoryEntry
}

// AuraHistoryEntry is one immutable balance change. ActorUID is nil for
// system-initiated entries such as account creation.
type AuraHistoryEntry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Change    int64
	Reason    string
	ActorUID  *uuid.UUID
}

// AuraChange describes a balance mutation to persist.
type AuraChange struct {
	SubjectUID uuid.UUID
	Delta      int64
	Reason     string
	ActorUID   uuid.UUID
	At         time.Time
}

// RankedAccount is one leaderboard row.
type RankedAccount struct {
	UID         uuid.UUID
	Username    string
	Balance     int64
	LastUpdated time.Time
}

// TransferParams describes a caller-requested aura transfer.
type TransferParams struct {
	SubjectUID uuid.UUID
	Delta      int64
	Reason     string
	ActorUID   uuid.UUID
}
