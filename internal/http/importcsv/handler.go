// Package importcsv accepts bank statement CSV uploads and feeds every
// parsed row through the ledger, so imported transactions respect the
// same funds checks and wallet aggregates as manual ones.
package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/category"
	"github.com/andredacosta/walletwise/internal/http/auth"
	"github.com/andredacosta/walletwise/internal/importer"
	"github.com/andredacosta/walletwise/internal/ledger"
	"github.com/andredacosta/walletwise/internal/transaction"
	"github.com/andredacosta/walletwise/internal/wallet"
)

type Handler struct {
	importSvc   *importer.Service
	ledgerSvc   *ledger.Service
	categorySvc *category.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service, categorySvc *category.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		ledgerSvc:   ledgerSvc,
		categorySvc: categorySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
	Parsed   int `json:"parsed"`
}

// importCSV saves rows one by one and stops at the first failure, so a
// rejected row (e.g. insufficient funds) never leaves later rows
// silently skipped. Rows saved before the failure stay applied; the
// response reports how far the import got.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	walletID, err := uuid.Parse(r.FormValue("wallet_id"))
	if err != nil {
		http.Error(w, "invalid wallet_id", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(file)
	if err != nil {
		http.Error(w, "failed to parse statement: "+err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0

	for _, row := range rows {
		params := ledger.SaveParams{
			UserID:      userID,
			WalletID:    walletID,
			Date:        row.Date,
			Description: row.Description,
		}

		if row.Amount >= 0 {
			params.Type = transaction.TypeIncome
			params.Amount = row.Amount
		} else {
			params.Type = transaction.TypeExpense
			params.Amount = -row.Amount

			cat, err := h.categorySvc.Suggest(r.Context(), userID, row.Description)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			params.Category = cat
		}

		if _, err := h.ledgerSvc.Save(r.Context(), params); err != nil {
			writeSaveError(w, err, imported, len(rows))
			return
		}

		imported++
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(importResponse{Imported: imported, Parsed: len(rows)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeSaveError(w http.ResponseWriter, err error, imported, parsed int) {
	status := http.StatusInternalServerError

	var insufficient *ledger.InsufficientFundsError

	switch {
	case errors.As(err, &insufficient):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, wallet.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrConflict):
		status = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":    err.Error(),
		"imported": imported,
		"parsed":   parsed,
	})
}
