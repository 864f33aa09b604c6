package universe

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles stock watchlist HTTP requests
type Handler struct {
	repo *StockRepository
	log  zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(repo *StockRepository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "universe").Logger(),
	}
}

// RegisterRoutes registers all stock routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stocks", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleList handles GET /api/stocks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list stocks")
		h.writeError(w, http.StatusInternalServerError, "failed to list stocks")
		return
	}
	h.writeJSON(w, http.StatusOK, stocks)
}

// HandleGet handles GET /api/stocks/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid stock id")
		return
	}

	stock, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to get stock")
		h.writeError(w, http.StatusInternalServerError, "failed to get stock")
		return
	}
	if stock == nil {
		h.writeError(w, http.StatusNotFound, "stock not found")
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

// HandleCreate handles POST /api/stocks
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var stock Stock
	if err := json.NewDecoder(r.Body).Decode(&stock); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if stock.Symbol == "" || stock.Name == "" {
		h.writeError(w, http.StatusBadRequest, "symbol and name are required")
		return
	}
	if stock.Status == "" {
		stock.Status = StatusWatching
	}

	if err := h.repo.Create(&stock); err != nil {
		h.log.Error().Err(err).Str("symbol", stock.Symbol).Msg("Failed to create stock")
		h.writeError(w, http.StatusInternalServerError, "failed to create stock")
		return
	}

	h.writeJSON(w, http.StatusCreated, stock)
}

// HandleUpdate handles PUT /api/stocks/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid stock id")
		return
	}

	existing, err := h.repo.GetByID(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to get stock")
		return
	}
	if existing == nil {
		h.writeError(w, http.StatusNotFound, "stock not found")
		return
	}

	var stock Stock
	if err := json.NewDecoder(r.Body).Decode(&stock); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	stock.ID = id

	if err := h.repo.Update(&stock); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to update stock")
		h.writeError(w, http.StatusInternalServerError, "failed to update stock")
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

// HandleDelete handles DELETE /api/stocks/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid stock id")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete stock")
		h.writeError(w, http.StatusInternalServerError, "failed to delete stock")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "stock deleted"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
