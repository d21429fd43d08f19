package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, wallet_id, type, amount, category, date, description, image_url, created_at, updated_at
		FROM transactions
		WHERE user_id = $1`

	args := []any{userID}
	argIdx := 2

	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *from)
		argIdx++
	}

	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *to)
		argIdx++
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing user transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		var tx transaction.Transaction

		var typeStr string

		var imageURL sql.NullString

		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.WalletID, &typeStr, &tx.Amount, &tx.Category,
			&tx.Date, &tx.Description, &imageURL, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		tx.Type = transaction.Type(typeStr)
		tx.ImageURL = imageURL.String

		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
