package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/andredacosta/walletwise/internal/ledger"
	"github.com/andredacosta/walletwise/internal/transaction"
	"github.com/andredacosta/walletwise/internal/wallet"
)

// maxAttempts bounds the serialization-conflict retry loop. Each attempt
// re-runs the caller's whole read-compute-write closure.
const maxAttempts = 5

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RunAtomic executes fn inside a SERIALIZABLE database transaction.
// Postgres detects conflicting concurrent commits optimistically; on a
// serialization failure the closure is retried from scratch so every
// attempt reads fresh wallet state. Business errors returned by fn roll
// back and are surfaced unchanged, without retry.
func (s *Store) RunAtomic(ctx context.Context, fn func(ctx context.Context, store ledger.AtomicStore) error) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isSerializationFailure(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("%w: %v", ledger.ErrConflict, lastErr)
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context, store ledger.AtomicStore) error) error {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("beginning atomic transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := fn(ctx, &atomicStore{tx: dbTx}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing atomic transaction: %w", err)
	}

	return nil
}

// isSerializationFailure reports whether err is a Postgres serialization
// failure (40001) or deadlock (40P01), both safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	return false
}

// atomicStore issues all reads and writes through one *sql.Tx.
type atomicStore struct {
	tx *sql.Tx
}

func (a *atomicStore) GetWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `
		SELECT id, user_id, name, image_url, amount, total_income, total_expenses, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	var w wallet.Wallet

	var imageURL sql.NullString

	err := a.tx.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.Name, &imageURL,
		&w.Amount, &w.TotalIncome, &w.TotalExpenses,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	w.ImageURL = imageURL.String

	return &w, nil
}

func (a *atomicStore) UpdateWalletAggregates(ctx context.Context, id uuid.UUID, agg wallet.Aggregates) error {
	query := `
		UPDATE wallets
		SET amount = $1, total_income = $2, total_expenses = $3, updated_at = NOW()
		WHERE id = $4
	`

	res, err := a.tx.ExecContext(ctx, query, agg.Amount, agg.TotalIncome, agg.TotalExpenses, id)
	if err != nil {
		return fmt.Errorf("updating wallet aggregates: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wallet.ErrNotFound
	}

	return nil
}

func (a *atomicStore) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, wallet_id, type, amount, category, date, description, image_url, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	var tx transaction.Transaction

	var typeStr string

	var imageURL sql.NullString

	err := a.tx.QueryRowContext(ctx, query, id).Scan(
		&tx.ID, &tx.UserID, &tx.WalletID, &typeStr, &tx.Amount, &tx.Category,
		&tx.Date, &tx.Description, &imageURL, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	tx.Type = transaction.Type(typeStr)
	tx.ImageURL = imageURL.String

	return &tx, nil
}

func (a *atomicStore) InsertTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, wallet_id, type, amount, category, date, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW())
		RETURNING id, created_at
	`

	err := a.tx.QueryRowContext(ctx, query,
		tx.UserID, tx.WalletID, tx.Type, tx.Amount, tx.Category,
		tx.Date, tx.Description, tx.ImageURL,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (a *atomicStore) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET wallet_id = $1, type = $2, amount = $3, category = $4, date = $5,
			description = $6, image_url = NULLIF($7, ''), updated_at = NOW()
		WHERE id = $8
	`

	res, err := a.tx.ExecContext(ctx, query,
		tx.WalletID, tx.Type, tx.Amount, tx.Category, tx.Date,
		tx.Description, tx.ImageURL, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (a *atomicStore) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := a.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (a *atomicStore) SumByWallet(ctx context.Context, walletID uuid.UUID) (wallet.Aggregates, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0),
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE wallet_id = $1
	`

	var agg wallet.Aggregates

	err := a.tx.QueryRowContext(ctx, query, walletID).
		Scan(&agg.Amount, &agg.TotalIncome, &agg.TotalExpenses)
	if err != nil {
		return wallet.Aggregates{}, fmt.Errorf("summing wallet transactions: %w", err)
	}

	return agg, nil
}
