package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/auraboard/auraboard-server/internal/model"
)

var _ model.QuotaStore = (*QuotaRepository)(nil)

// QuotaRepository owns the daily-spend columns of the users table. Every
// mutation is a single conditional or incrementing UPDATE, so concurrent
// quota operations resolve at the storage level.
type QuotaRepository struct {
	db *Connection
}

func NewQuotaRepository(db *Connection) *QuotaRepository {
	return &QuotaRepository{
		db: db,
	}
}

func (r *QuotaRepository) Get(ctx context.Context, userID uuid.UUID) (model.QuotaState, error) {
	const query = `SELECT id, daily_limit, daily_spent, last_reset FROM users WHERE id = $1`

	var state model.QuotaState
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&state.UserID, &state.DailyLimit, &state.DailySpent, &state.LastReset,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.QuotaState{}, model.ErrNotFound
		}
		return model.QuotaState{}, fmt.Errorf("failed to get quota state: %w", err)
	}

	return state, nil
}

// Initialize sets the reset timestamp only where none exists yet, so a
// concurrent first check cannot initialize twice.
func (r *QuotaRepository) Initialize(ctx context.Context, userID uuid.UUID, now time.Time) error {
	const query = `
		UPDATE users SET daily_spent = 0, last_reset = $2, updated_at = NOW()
		WHERE id = $1 AND last_reset IS NULL`

	if _, err := r.db.Exec(ctx, query, userID, now); err != nil {
		return fmt.Errorf("failed to initialize quota state: %w", err)
	}
	return nil
}

// Reset zeroes the spent counter keyed on the previous reset timestamp.
// It reports false when another caller already performed the reset.
func (r *QuotaRepository) Reset(ctx context.Context, userID uuid.UUID, now, prevReset time.Time) (bool, error) {
	const query = `
		UPDATE users SET daily_spent = 0, last_reset = $2, updated_at = NOW()
		WHERE id = $1 AND last_reset = $3`

	cmd, err := r.db.Exec(ctx, query, userID, now, prevReset)
	if err != nil {
		return false, fmt.Errorf("failed to reset quota state: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AddSpent increments the spent counter server-side. It does not check the
// limit; admission happens in the tracker before the balance mutation.
func (r *QuotaRepository) AddSpent(ctx context.Context, userID uuid.UUID, amount int64) error {
	const query = `
		UPDATE users SET daily_spent = daily_spent + $2, updated_at = NOW()
		WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit quota: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
