package portfolio

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *Service
	txns    *TransactionRepository
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *Service, txns *TransactionRepository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		txns:    txns,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/summary", h.HandleSummary)
		r.Get("/xirr", h.HandleXIRR)
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.HandleListTransactions)
			r.Post("/", h.HandleCreateTransaction)
			r.Put("/{id}", h.HandleUpdateTransaction)
			r.Delete("/{id}", h.HandleDeleteTransaction)
		})
	})
}

// HandleSummary handles GET /api/portfolio/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build portfolio summary")
		h.writeError(w, http.StatusInternalServerError, "failed to build portfolio summary")
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// HandleXIRR handles GET /api/portfolio/xirr
func (h *Handler) HandleXIRR(w http.ResponseWriter, r *http.Request) {
	xirr, err := h.service.GetXIRR()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute XIRR")
		h.writeError(w, http.StatusInternalServerError, "failed to compute XIRR")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"xirr_pct": xirr})
}

// HandleListTransactions handles GET /api/portfolio/transactions
func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		txns []domain.Transaction
		err  error
	)
	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		txns, err = h.txns.GetBySymbol(symbol)
	} else {
		txns, err = h.txns.GetAll()
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		h.writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	h.writeJSON(w, http.StatusOK, txns)
}

type transactionRequest struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Side     string  `json:"side"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Reason   string  `json:"reason"`
	Notes    string  `json:"notes"`
}

func (req *transactionRequest) toTransaction() (*domain.Transaction, error) {
	side, err := domain.TxnSideFromString(req.Side)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Side:     side,
		Quantity: req.Quantity,
		Price:    req.Price,
		Amount:   req.Amount,
		Date:     date,
		Reason:   req.Reason,
		Notes:    req.Notes,
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	return txn, nil
}

// HandleCreateTransaction handles POST /api/portfolio/transactions
func (h *Handler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := req.toTransaction()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.txns.Create(txn); err != nil {
		h.log.Error().Err(err).Str("symbol", txn.Symbol).Msg("Failed to create transaction")
		h.writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	h.writeJSON(w, http.StatusCreated, txn)
}

// HandleUpdateTransaction handles PUT /api/portfolio/transactions/{id}
func (h *Handler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	existing, err := h.txns.GetByID(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to get transaction")
		return
	}
	if existing == nil {
		h.writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := req.toTransaction()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	txn.ID = id

	if err := h.txns.Update(txn); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to update transaction")
		h.writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}

	h.writeJSON(w, http.StatusOK, txn)
}

// HandleDeleteTransaction handles DELETE /api/portfolio/transactions/{id}
func (h *Handler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.txns.Delete(id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete transaction")
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
