package mutualfunds

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
)

// Handler handles mutual fund HTTP requests
type Handler struct {
	service *Service
	repo    *Repository
	log     zerolog.Logger
}

// NewHandler creates a new mutual fund handler
func NewHandler(service *Service, repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "mutualfunds").Logger(),
	}
}

// RegisterRoutes registers all mutual fund routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/mutual-funds", func(r chi.Router) {
		r.Get("/summary", h.HandleSummary)
		r.Get("/xirr", h.HandleXIRR)
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.HandleListTransactions)
			r.Post("/", h.HandleCreateTransaction)
			r.Delete("/{id}", h.HandleDeleteTransaction)
		})
	})
}

// HandleSummary handles GET /api/mutual-funds/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build mutual fund summary")
		h.writeError(w, http.StatusInternalServerError, "failed to build mutual fund summary")
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// HandleXIRR handles GET /api/mutual-funds/xirr
func (h *Handler) HandleXIRR(w http.ResponseWriter, r *http.Request) {
	xirr, err := h.service.GetXIRR()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute mutual fund XIRR")
		h.writeError(w, http.StatusInternalServerError, "failed to compute XIRR")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"xirr_pct": xirr})
}

// HandleListTransactions handles GET /api/mutual-funds/transactions
func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list mutual fund transactions")
		h.writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	h.writeJSON(w, http.StatusOK, txns)
}

type mfTransactionRequest struct {
	SchemeCode string  `json:"scheme_code"`
	SchemeName string  `json:"scheme_name"`
	Side       string  `json:"side"`
	Units      float64 `json:"units"`
	NAV        float64 `json:"nav"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes"`
}

// HandleCreateTransaction handles POST /api/mutual-funds/transactions
func (h *Handler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req mfTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	side, err := domain.TxnSideFromString(req.Side)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SchemeCode == "" || req.Units <= 0 || req.Amount <= 0 {
		h.writeError(w, http.StatusBadRequest, "scheme_code, positive units and amount are required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	txn := &MFTransaction{
		SchemeCode: req.SchemeCode,
		SchemeName: req.SchemeName,
		Side:       string(side),
		Units:      req.Units,
		NAV:        req.NAV,
		Amount:     req.Amount,
		Date:       date,
		Notes:      req.Notes,
	}

	if err := h.repo.Create(txn); err != nil {
		h.log.Error().Err(err).Str("scheme", txn.SchemeCode).Msg("Failed to create mutual fund transaction")
		h.writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	h.writeJSON(w, http.StatusCreated, txn)
}

// HandleDeleteTransaction handles DELETE /api/mutual-funds/transactions/{id}
func (h *Handler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete mutual fund transaction")
		h.writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
