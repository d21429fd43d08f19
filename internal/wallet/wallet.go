package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("wallet not found")
	ErrNameMissing = errors.New("wallet name is required")
)

// Wallet is a named bucket holding a running balance plus gross
// income/expense totals. Amount may go negative (reverting an income can
// leave the balance below zero); the totals only ever change by a
// transaction's own contribution.
type Wallet struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	ImageURL      string
	Amount        int64 // cents
	TotalIncome   int64 // cents, gross
	TotalExpenses int64 // cents, gross
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Aggregates is the cached-balance slice of a wallet that ledger
// mutations read and rewrite as a unit.
type Aggregates struct {
	Amount        int64
	TotalIncome   int64
	TotalExpenses int64
}

func (w *Wallet) Aggregates() Aggregates {
	return Aggregates{
		Amount:        w.Amount,
		TotalIncome:   w.TotalIncome,
		TotalExpenses: w.TotalExpenses,
	}
}
