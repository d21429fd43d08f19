package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andredacosta/walletwise/internal/category"
	"github.com/andredacosta/walletwise/internal/http/auth"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/mappings", h.learn)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	description := r.URL.Query().Get("description")
	if description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	cat, err := h.svc.Suggest(r.Context(), userID, description)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"category": cat}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern"`
	Category   string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.RawPattern == "" || req.Category == "" {
		http.Error(w, "raw_pattern and category are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), userID, req.RawPattern, req.Category); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
