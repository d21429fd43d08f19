package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	WalletID    uuid.UUID        `json:"wallet_id"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Category    string           `json:"category"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		WalletID:    tx.WalletID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Date:        tx.Date,
		Description: tx.Description,
		ImageURL:    tx.ImageURL,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
