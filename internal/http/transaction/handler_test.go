package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andredacosta/walletwise/internal/http/auth"
	"github.com/andredacosta/walletwise/internal/ledger"
	"github.com/andredacosta/walletwise/internal/transaction"
	"github.com/andredacosta/walletwise/internal/wallet"
)

func TestWriteLedgerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"InvalidAmount", transaction.ErrInvalidAmount, http.StatusBadRequest},
		{"InvalidType", transaction.ErrInvalidType, http.StatusBadRequest},
		{"WalletRequired", transaction.ErrWalletRequired, http.StatusBadRequest},
		{"CategoryMissing", transaction.ErrCategoryMissing, http.StatusBadRequest},
		{"WalletNotFound", wallet.ErrNotFound, http.StatusNotFound},
		{"TransactionNotFound", transaction.ErrNotFound, http.StatusNotFound},
		{"UploadFailed", ledger.ErrUploadFailed, http.StatusBadGateway},
		{"Conflict", ledger.ErrConflict, http.StatusConflict},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeLedgerError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// A save targeting someone else's wallet must come back 404, exactly
// like the read endpoints hide foreign resources.
func TestSaveForeignWalletNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := ledger.NewMockRepository(ctrl)
	atomicStore := ledger.NewMockAtomicStore(ctrl)

	walletID := uuid.New()

	repo.EXPECT().
		RunAtomic(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, ledger.AtomicStore) error) error {
			return fn(ctx, atomicStore)
		})
	atomicStore.EXPECT().
		GetWallet(gomock.Any(), walletID).
		Return(&wallet.Wallet{ID: walletID, UserID: uuid.New(), Amount: 100000}, nil)

	h := NewHandler(ledger.NewService(repo, nil), nil)

	body, err := json.Marshal(map[string]any{
		"wallet_id": walletID,
		"type":      "income",
		"amount":    500,
		"date":      time.Now().Format(time.RFC3339),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), uuid.New()))

	rec := httptest.NewRecorder()
	h.save(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteLedgerErrorInsufficientFunds(t *testing.T) {
	rec := httptest.NewRecorder()

	writeLedgerError(rec, &ledger.InsufficientFundsError{Available: 1000})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error     string `json:"error"`
		Available int64  `json:"available"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, int64(1000), body.Available)
	assert.Contains(t, body.Error, "insufficient funds")
}
