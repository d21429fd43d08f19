package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/http/auth"
	"github.com/andredacosta/walletwise/internal/ledger"
	"github.com/andredacosta/walletwise/internal/transaction"
	"github.com/andredacosta/walletwise/internal/wallet"
)

type Handler struct {
	ledgerSvc *ledger.Service
	txSvc     *transaction.Service
}

func NewHandler(ledgerSvc *ledger.Service, txSvc *transaction.Service) *Handler {
	return &Handler{ledgerSvc: ledgerSvc, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.save)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type saveRequest struct {
	ID          *uuid.UUID       `json:"id,omitempty"`
	WalletID    uuid.UUID        `json:"wallet_id"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Category    string           `json:"category"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
}

// save creates a transaction when the body carries no id, edits it
// otherwise. A multipart request may attach a receipt image under the
// "image" field next to the "payload" JSON.
func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req saveRequest

	var image *ledger.ImageAttachment

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := json.Unmarshal([]byte(r.FormValue("payload")), &req); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()

			image = &ledger.ImageAttachment{Content: file, Filename: header.Filename}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	tx, err := h.ledgerSvc.Save(r.Context(), ledger.SaveParams{
		ID:          req.ID,
		UserID:      userID,
		WalletID:    req.WalletID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Image:       image,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	status := http.StatusCreated
	if req.ID != nil {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := transaction.ListFilter{UserID: userID}

	if s := r.URL.Query().Get("wallet_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.WalletID = &id
		}
	}

	if s := r.URL.Query().Get("type"); s != "" {
		t := transaction.Type(s)
		filter.Type = &t
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	txs, err := h.txSvc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.txSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if tx.UserID != userID {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.txSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if tx.UserID != userID {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	if err := h.ledgerSvc.Delete(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeLedgerError maps engine failures onto HTTP statuses. Insufficient
// funds carries the available balance so the client can show it.
func writeLedgerError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientFundsError
	if errors.As(err, &insufficient) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
		})

		return
	}

	switch {
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrWalletRequired),
		errors.Is(err, transaction.ErrCategoryMissing):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, wallet.ErrNotFound), errors.Is(err, transaction.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrUploadFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, ledger.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
