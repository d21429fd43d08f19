package wallet

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/http/auth"
	"github.com/andredacosta/walletwise/internal/ledger"
	"github.com/andredacosta/walletwise/internal/wallet"
)

type Handler struct {
	walletSvc *wallet.Service
	ledgerSvc *ledger.Service
}

func NewHandler(walletSvc *wallet.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{walletSvc: walletSvc, ledgerSvc: ledgerSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/verify", h.verify)
}

type walletResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	ImageURL      string     `json:"image_url,omitempty"`
	Amount        int64      `json:"amount"`
	TotalIncome   int64      `json:"total_income"`
	TotalExpenses int64      `json:"total_expenses"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toResponse(w *wallet.Wallet) walletResponse {
	return walletResponse{
		ID:            w.ID,
		Name:          w.Name,
		ImageURL:      w.ImageURL,
		Amount:        w.Amount,
		TotalIncome:   w.TotalIncome,
		TotalExpenses: w.TotalExpenses,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

type createRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wlt, err := h.walletSvc.Create(r.Context(), wallet.CreateParams{
		UserID:   userID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrNameMissing) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(wlt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	wallets, err := h.walletSvc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]walletResponse, len(wallets))
	for i, wlt := range wallets {
		resp[i] = toResponse(wlt)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ownedWallet loads the wallet and hides it from other users.
func (h *Handler) ownedWallet(w http.ResponseWriter, r *http.Request) (*wallet.Wallet, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	wlt, err := h.walletSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			http.Error(w, "wallet not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if wlt.UserID != userID {
		http.Error(w, "wallet not found", http.StatusNotFound)
		return nil, false
	}

	return wlt, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	wlt, ok := h.ownedWallet(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(wlt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	wlt, ok := h.ownedWallet(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.walletSvc.Update(r.Context(), wlt.ID, wallet.UpdateParams{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrNameMissing) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	wlt, ok := h.ownedWallet(w, r)
	if !ok {
		return
	}

	if err := h.walletSvc.Delete(r.Context(), wlt.ID); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type verifyResponse struct {
	Consistent bool              `json:"consistent"`
	Cached     wallet.Aggregates `json:"cached"`
	Recomputed wallet.Aggregates `json:"recomputed"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	wlt, ok := h.ownedWallet(w, r)
	if !ok {
		return
	}

	drift, err := h.ledgerSvc.VerifyWallet(r.Context(), wlt.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(verifyResponse{
		Consistent: drift.Consistent(),
		Cached:     drift.Cached,
		Recomputed: drift.Recomputed,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
