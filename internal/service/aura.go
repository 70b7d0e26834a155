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

// Aura is the ledger holding every user's balance and change history.
// Admission for transfers is gated by the quota tracker.
type Aura struct {
	auraStore model.AuraStore
	userStore model.UserStore
	quota     model.QuotaTracker
	logger    *logger.Logger
}

func NewAura(
	auraStore model.AuraStore,
	userStore model.UserStore,
	quota model.QuotaTracker,
	logger *logger.Logger,
) *Aura {
	return &Aura{
		auraStore: auraStore,
		userStore: userStore,
		quota:     quota,
		logger:    logger,
	}
}

// Initialize creates the account for uid if it does not exist yet.
func (s *Aura) Initialize(ctx context.Context, uid uuid.UUID) error {
	if err := s.auraStore.Initialize(ctx, uid, time.Now()); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to initialize aura account: %w", err)
	}
	return nil
}

// Get returns the account snapshot for uid without side effects.
func (s *Aura) Get(ctx context.Context, uid uuid.UUID) (model.AuraAccount, error) {
	account, err := s.auraStore.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AuraAccount{}, model.ErrNotFound
		}
		return model.AuraAccount{}, fmt.Errorf("failed to get aura account: %w", err)
	}
	return account, nil
}

// GetOrCreate returns the account for uid, creating it first when missing.
// This is the self-healing read the API layer uses.
func (s *Aura) GetOrCreate(ctx context.Context, uid uuid.UUID) (model.AuraAccount, error) {
	account, err := s.auraStore.GetByUID(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		if err := s.Initialize(ctx, uid); err != nil {
			return model.AuraAccount{}, err
		}
		account, err = s.auraStore.GetByUID(ctx, uid)
		if err != nil {
			return model.AuraAccount{}, fmt.Errorf("failed to get aura account after create: %w", err)
		}
		return account, nil
	}
	if err != nil {
		return model.AuraAccount{}, fmt.Errorf("failed to get aura account: %w", err)
	}
	return account, nil
}

// Transfer applies a signed delta to the subject's balance on behalf of the
// actor. The sequence is: validate, admit via the quota tracker, atomically
// mutate balance+history, then debit the actor's daily counter. A debit
// failure after the committed mutation leaves only the counter stale; the
// transfer stands and the failure is logged.
func (s *Aura) Transfer(ctx context.Context, params model.TransferParams) (int64, error) {
	if params.Delta == 0 {
		return 0, model.ErrZeroChange
	}
	if params.Reason == "" {
		return 0, model.ErrEmptyReason
	}
	if params.SubjectUID == params.ActorUID {
		return 0, model.ErrSelfTransfer
	}

	if _, err := s.userStore.GetByID(ctx, params.SubjectUID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("failed to resolve subject: %w", err)
	}
	if _, err := s.userStore.GetByID(ctx, params.ActorUID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("failed to resolve actor: %w", err)
	}

	amount := params.Delta
	if amount < 0 {
		amount = -amount
	}

	ok, err := s.quota.CanSpend(ctx, params.ActorUID, amount)
	if err != nil {
		return 0, fmt.Errorf("quota check failed: %w", err)
	}
	if !ok {
		return 0, model.ErrQuotaExceeded
	}

	change := model.AuraChange{
		SubjectUID: params.SubjectUID,
		Delta:      params.Delta,
		Reason:     params.Reason,
		ActorUID:   params.ActorUID,
		At:         time.Now(),
	}

	balance, err := s.auraStore.ApplyChange(ctx, change)
	if errors.Is(err, model.ErrNotFound) {
		// Subject exists but the account was never materialized.
		if err := s.auraStore.Initialize(ctx, params.SubjectUID, change.At); err != nil {
			return 0, fmt.Errorf("failed to initialize subject account: %w", err)
		}
		balance, err = s.auraStore.ApplyChange(ctx, change)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply aura change: %w", err)
	}

	if err := s.quota.Debit(ctx, params.ActorUID, amount); err != nil {
		s.logger.Error("quota debit failed after committed transfer",
			"actor_id", params.ActorUID,
			"subject_id", params.SubjectUID,
			"amount", amount,
			"error", err.Error())
	}

	return balance, nil
}

// ListRanked returns all active accounts ordered by balance descending.
func (s *Aura) ListRanked(ctx context.Context) ([]model.RankedAccount, error) {
	ranked, err := s.auraStore.ListRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked accounts: %w", err)
	}
	return ranked, nil
}
