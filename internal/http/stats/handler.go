package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/http/auth"
	"github.com/andredacosta/walletwise/internal/stats"
	"github.com/andredacosta/walletwise/internal/transaction"
)

type Handler struct {
	svc *stats.Service
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/weekly", h.window(h.svc.Weekly))
	r.Get("/monthly", h.window(h.svc.Monthly))
	r.Get("/annual", h.window(h.svc.Annual))
	r.Get("/overview", h.overview)
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	WalletID    uuid.UUID        `json:"wallet_id"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Category    string           `json:"category"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url,omitempty"`
}

type resultResponse struct {
	Buckets      []stats.Bucket        `json:"buckets"`
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(res *stats.Result) resultResponse {
	txs := make([]transactionResponse, len(res.Transactions))
	for i, tx := range res.Transactions {
		txs[i] = transactionResponse{
			ID:          tx.ID,
			WalletID:    tx.WalletID,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Date:        tx.Date,
			Description: tx.Description,
			ImageURL:    tx.ImageURL,
		}
	}

	return resultResponse{
		Buckets:      res.Buckets,
		Transactions: txs,
	}
}

func (h *Handler) window(aggregate func(context.Context, uuid.UUID) (*stats.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		res, err := aggregate(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

type overviewResponse struct {
	Weekly  resultResponse `json:"weekly"`
	Monthly resultResponse `json:"monthly"`
	Annual  resultResponse `json:"annual"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	overview, err := h.svc.Overview(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(overviewResponse{
		Weekly:  toResponse(overview.Weekly),
		Monthly: toResponse(overview.Monthly),
		Annual:  toResponse(overview.Annual),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
