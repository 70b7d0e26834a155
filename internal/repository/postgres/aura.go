package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/auraboard/auraboard-server/internal/model"
)

var _ model.AuraStore = (*AuraRepository)(nil)

type AuraRepository struct {
	db *Connection
}

func NewAuraRepository(db *Connection) *AuraRepository {
	return &AuraRepository{
		db: db,
	}
}

// Initialize creates the account with a zero balance and its synthetic
// creation history entry. Calling it on an existing account is a no-op:
// the history insert only fires when the account row was actually inserted.
func (r *AuraRepository) Initialize(ctx context.Context, uid uuid.UUID, now time.Time) error {
	query := `
		WITH ins AS (
			INSERT INTO aura_accounts (uid, balance, last_updated, created_at)
			VALUES ($1, 0, $2, $2)
			ON CONFLICT (uid) DO NOTHING
			RETURNING uid
		)
		INSERT INTO aura_history (id, account_uid, created_at, change, reason, actor_uid)
		SELECT $3, uid, $2, 0, $4, NULL FROM ins`

	_, err := r.db.Exec(ctx, query, uid, now, uuid.New(), model.AccountCreationReason)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to initialize aura account: %w", err)
	}

	return nil
}

// GetByUID returns the account with its full history. Both reads run in one
// repeatable-read transaction so the balance and the history come from the
// same snapshot and the balance always equals the sum of the entries.
func (r *AuraRepository) GetByUID(ctx context.Context, uid uuid.UUID) (model.AuraAccount, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return model.AuraAccount{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const accountQuery = `
		SELECT uid, balance, last_updated, created_at
		FROM aura_accounts WHERE uid = $1`

	var account model.AuraAccount
	err = tx.QueryRow(ctx, accountQuery, uid).Scan(
		&account.UID, &account.Balance, &account.LastUpdated, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuraAccount{}, model.ErrNotFound
		}
		return model.AuraAccount{}, fmt.Errorf("failed to get aura account: %w", err)
	}

	const historyQuery = `
		SELECT id, created_at, change, reason, actor_uid
		FROM aura_history WHERE account_uid = $1
		ORDER BY seq ASC`

	rows, err := tx.Query(ctx, historyQuery, uid)
	if err != nil {
		return model.AuraAccount{}, fmt.Errorf("failed to get aura history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry model.AuraHistoryEntry
		err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Change, &entry.Reason, &entry.ActorUID)
		if err != nil {
			return model.AuraAccount{}, fmt.Errorf("failed to scan aura history entry: %w", err)
		}
		account.History = append(account.History, entry)
	}

	if err := rows.Err(); err != nil {
		return model.AuraAccount{}, fmt.Errorf("failed to read aura history: %w", err)
	}
	rows.Close()

	if err := tx.Commit(ctx); err != nil {
		return model.AuraAccount{}, fmt.Errorf("failed to commit snapshot read: %w", err)
	}

	return account, nil
}

// ApplyChange updates the subject's balance and appends the matching history
// entry in one transaction. The balance update is a server-side increment,
// so concurrent transfers to the same subject never lose an update.
func (r *AuraRepository) ApplyChange(ctx context.Context, change model.AuraChange) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const balanceQuery = `
		UPDATE aura_accounts SET balance = balance + $2, last_updated = $3
		WHERE uid = $1
		RETURNING balance`

	var balance int64
	err = tx.QueryRow(ctx, balanceQuery, change.SubjectUID, change.Delta, change.At).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	const historyQuery = `
		INSERT INTO aura_history (id, account_uid, created_at, change, reason, actor_uid)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.Exec(ctx, historyQuery,
		uuid.New(), change.SubjectUID, change.At, change.Delta, change.Reason, change.ActorUID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append history entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit aura change: %w", err)
	}

	return balance, nil
}

// ListRanked returns active accounts ordered by balance descending, ties
// broken by account creation order. Accounts of disabled users are excluded.
func (r *AuraRepository) ListRanked(ctx context.Context) ([]model.RankedAccount, error) {
	const query = `
		SELECT a.uid, COALESCE(u.username, 'Unknown User'), a.balance, a.last_updated
		FROM aura_accounts a
		LEFT JOIN users u ON u.id = a.uid
		WHERE u.disabled IS NOT TRUE
		ORDER BY a.balance DESC, a.created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked accounts: %w", err)
	}
	defer rows.Close()

	var ranked []model.RankedAccount
	for rows.Next() {
		var entry model.RankedAccount
		err := rows.Scan(&entry.UID, &entry.Username, &entry.Balance, &entry.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranked account: %w", err)
		}
		ranked = append(ranked, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranked accounts: %w", err)
	}

	return ranked, nil
}
