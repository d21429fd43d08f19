// Package ledger keeps wallet aggregates consistent with the transaction
// set. Every transaction create, edit, or delete goes through the Service
// here; nothing else is allowed to touch a wallet's amount or totals.
package ledger

import (
	"errors"
	"fmt"

	"github.com/andredacosta/walletwise/internal/transaction"
	"github.com/andredacosta/walletwise/internal/wallet"
)

var (
	// ErrConflict is returned when the atomic store keeps hitting write
	// conflicts and the retry budget is exhausted.
	ErrConflict = errors.New("store conflict, retries exhausted")

	// ErrUploadFailed marks a failed receipt-image upload. The save is
	// aborted before any ledger mutation.
	ErrUploadFailed = errors.New("image upload failed")
)

// InsufficientFundsError rejects an expense that would drive the wallet
// balance negative. Available is the balance the expense was checked
// against, in cents, so callers can show it to the user.
type InsufficientFundsError struct {
	Available int64
}

func (e *InsufficientFundsError) Error() string {
	cents := e.Available

	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("insufficient funds: available balance %s%d.%02d",
		sign, cents/100, cents%100)
}

// apply folds a transaction's effect into the aggregates: income raises
// the balance and the gross income total, expense lowers the balance and
// raises the gross expense total.
func apply(agg wallet.Aggregates, typ transaction.Type, amount int64) wallet.Aggregates {
	if typ == transaction.TypeIncome {
		agg.Amount += amount
		agg.TotalIncome += amount
	} else {
		agg.Amount -= amount
		agg.TotalExpenses += amount
	}

	return agg
}

// revert is the exact inverse of apply. It subtracts a transaction's own
// contribution from the gross total, never merely adjusting the net
// balance.
func revert(agg wallet.Aggregates, typ transaction.Type, amount int64) wallet.Aggregates {
	if typ == transaction.TypeIncome {
		agg.Amount -= amount
		agg.TotalIncome -= amount
	} else {
		agg.Amount += amount
		agg.TotalExpenses -= amount
	}

	return agg
}
