package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/wallet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectWalletColumns = `
	id, user_id, name, image_url, amount, total_income, total_expenses, created_at, updated_at
`

func scanWallet(s scanner) (*wallet.Wallet, error) {
	var w wallet.Wallet

	var imageURL sql.NullString

	if err := s.Scan(
		&w.ID, &w.UserID, &w.Name, &imageURL,
		&w.Amount, &w.TotalIncome, &w.TotalExpenses,
		&w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}

	w.ImageURL = imageURL.String

	return &w, nil
}

func (s *Store) CreateWallet(ctx context.Context, w *wallet.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, name, image_url, amount, total_income, total_expenses, created_at)
		VALUES ($1, $2, NULLIF($3, ''), 0, 0, 0, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, w.UserID, w.Name, w.ImageURL).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating wallet: %w", err)
	}

	return nil
}

func (s *Store) GetWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallets WHERE id = $1`

	w, err := scanWallet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	return w, nil
}

func (s *Store) ListWallets(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	query := `SELECT ` + selectWalletColumns + `
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet

	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallet rows: %w", err)
	}

	return wallets, nil
}

func (s *Store) UpdateWallet(ctx context.Context, w *wallet.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $1, image_url = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, w.Name, w.ImageURL, w.ID)
	if err != nil {
		return fmt.Errorf("updating wallet: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wallet.ErrNotFound
	}

	return nil
}

// DeleteWallet removes the wallet and all of its transactions in one
// database transaction so no orphaned transaction rows survive.
func (s *Store) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE wallet_id = $1`, id); err != nil {
		return fmt.Errorf("deleting wallet transactions: %w", err)
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting wallet: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wallet.ErrNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing wallet delete: %w", err)
	}

	return nil
}
