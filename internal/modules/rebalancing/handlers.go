package rebalancing

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles rebalancing HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new rebalancing handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "rebalancing").Logger(),
	}
}

// RegisterRoutes registers all rebalancing routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/rebalancing", h.HandlePlan)
}

// HandlePlan handles GET /api/rebalancing
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build rebalancing plan")
		h.writeError(w, http.StatusInternalServerError, "failed to build rebalancing plan")
		return
	}
	h.writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
