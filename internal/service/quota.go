package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/model"
)

var _ model.QuotaTracker = (*Quota)(nil)

// Quota tracks how much aura each actor has distributed today and decides
// whether a proposed spend is admissible. The calendar-day boundary is
// evaluated in a fixed location so resets are deterministic across replicas.
type Quota struct {
	store     model.QuotaStore
	baseLimit int64
	location  *time.Location
	logger    *logger.Logger
}

func NewQuota(store model.QuotaStore, baseLimit int64, location *time.Location, logger *logger.Logger) *Quota {
	return &Quota{
		store:     store,
		baseLimit: baseLimit,
		location:  location,
		logger:    logger,
	}
}

// EnsureFresh loads the actor's quota state, lazily initializing it on first
// use and zeroing the spent counter when a new calendar day has started.
// The reset is keyed on the previously observed reset timestamp; after the
// initialize, and after a reset lost to a concurrent caller, the state is
// re-read from the store.
func (s *Quota) EnsureFresh(ctx context.Context, actorID uuid.UUID) (model.QuotaState, error) {
	state, err := s.store.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.QuotaState{}, model.ErrNotFound
		}
		return model.QuotaState{}, fmt.Errorf("failed to get quota state: %w", err)
	}

	now := time.Now().In(s.location)

	if state.LastReset == nil {
		if err := s.store.Initialize(ctx, actorID, now); err != nil {
			return model.QuotaState{}, fmt.Errorf("failed to initialize quota state: %w", err)
		}
		// A concurrent caller may have initialized and debited already,
		// so the fresh state comes from the store, not from assumption.
		state, err = s.store.Get(ctx, actorID)
		if err != nil {
			return model.QuotaState{}, fmt.Errorf("failed to re-read quota state: %w", err)
		}
		return state, nil
	}

	if !sameCalendarDay(state.LastReset.In(s.location), now) {
		won, err := s.store.Reset(ctx, actorID, now, *state.LastReset)
		if err != nil {
			return model.QuotaState{}, fmt.Errorf("failed to reset quota state: %w", err)
		}
		if !won {
			state, err = s.store.Get(ctx, actorID)
			if err != nil {
				return model.QuotaState{}, fmt.Errorf("failed to re-read quota state: %w", err)
			}
			return state, nil
		}
		state.DailySpent = 0
		state.LastReset = &now
	}

	return state, nil
}

// CanSpend reports whether the actor may distribute amount more aura today.
// It is a pure admission check: the spent counter is not mutated. A missing
// actor profile fails closed.
func (s *Quota) CanSpend(ctx context.Context, actorID uuid.UUID, amount int64) (bool, error) {
	if amount < 0 {
		return false, model.ErrNegativeAmount
	}

	state, err := s.EnsureFresh(ctx, actorID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return state.DailySpent+amount <= s.limitFor(state), nil
}

// Debit adds amount to the actor's daily spend counter. It does not
// re-validate against the limit; under concurrent transfers by the same
// actor the counter can pass it (see the tracker tests).
func (s *Quota) Debit(ctx context.Context, actorID uuid.UUID, amount int64) error {
	if amount < 0 {
		return model.ErrNegativeAmount
	}

	if err := s.store.AddSpent(ctx, actorID, amount); err != nil {
		return fmt.Errorf("failed to debit quota: %w", err)
	}
	return nil
}

// Remaining returns how much aura the actor may still distribute today.
func (s *Quota) Remaining(ctx context.Context, actorID uuid.UUID) (int64, error) {
	state, err := s.EnsureFresh(ctx, actorID)
	if err != nil {
		return 0, err
	}

	remaining := s.limitFor(state) - state.DailySpent
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *Quota) limitFor(state model.QuotaState) int64 {
	if state.DailyLimit != nil && *state.DailyLimit > 0 {
		return *state.DailyLimit
	}
	return s.baseLimit
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
