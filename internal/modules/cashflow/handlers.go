package cashflow

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles cash flow HTTP requests
type Handler struct {
	service *Service
	repo    *Repository
	log     zerolog.Logger
}

// NewHandler creates a new cash flow handler
func NewHandler(service *Service, repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "cashflow").Logger(),
	}
}

// RegisterRoutes registers all cash flow routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cash-flow", func(r chi.Router) {
		r.Get("/analysis", h.HandleAnalysis)
		r.Route("/income", func(r chi.Router) {
			r.Get("/", h.handleList(h.repo.GetIncome))
			r.Post("/", h.handleCreate(h.repo.CreateIncome))
			r.Delete("/{id}", h.handleDelete(h.repo.DeleteIncome))
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.handleList(h.repo.GetExpenses))
			r.Post("/", h.handleCreate(h.repo.CreateExpense))
			r.Delete("/{id}", h.handleDelete(h.repo.DeleteExpense))
		})
	})
}

// HandleAnalysis handles GET /api/cash-flow/analysis
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.GetAnalysis()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build cash flow analysis")
		h.writeError(w, http.StatusInternalServerError, "failed to build cash flow analysis")
		return
	}
	h.writeJSON(w, http.StatusOK, analysis)
}

type entryRequest struct {
	Label       string  `json:"label"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	IsRecurring bool    `json:"is_recurring"`
}

func (h *Handler) handleList(get func() ([]Entry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := get()
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to list cash flow entries")
			h.writeError(w, http.StatusInternalServerError, "failed to list entries")
			return
		}
		h.writeJSON(w, http.StatusOK, entries)
	}
}

func (h *Handler) handleCreate(create func(*Entry) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Label == "" || req.Amount <= 0 {
			h.writeError(w, http.StatusBadRequest, "label and positive amount are required")
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}

		entry := &Entry{
			Label:       req.Label,
			Amount:      req.Amount,
			Date:        date,
			Description: req.Description,
			IsRecurring: req.IsRecurring,
		}
		if err := create(entry); err != nil {
			h.log.Error().Err(err).Msg("Failed to create cash flow entry")
			h.writeError(w, http.StatusInternalServerError, "failed to create entry")
			return
		}
		h.writeJSON(w, http.StatusCreated, entry)
	}
}

func (h *Handler) handleDelete(remove func(int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := remove(id); err != nil {
			h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete cash flow entry")
			h.writeError(w, http.StatusInternalServerError, "failed to delete entry")
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
