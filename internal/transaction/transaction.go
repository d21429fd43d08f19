package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// IncomeCategory is the single fixed category every income transaction
// carries. Expenses use free-form categories.
const IncomeCategory = "income"

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalidAmount   = errors.New("transaction amount must be positive")
	ErrInvalidType     = errors.New("transaction type must be income or expense")
	ErrWalletRequired  = errors.New("transaction wallet is required")
	ErrCategoryMissing = errors.New("expense transactions require a category")
)

// Transaction is a single income or expense entry. Amount is always a
// positive magnitude in cents; the sign is implied by Type.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    uuid.UUID
	Type        Type
	Amount      int64 // cents
	Category    string
	Date        time.Time
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
