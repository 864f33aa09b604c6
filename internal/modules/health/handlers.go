package health

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles portfolio health HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new health handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "health").Logger(),
	}
}

// RegisterRoutes registers all health routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/portfolio-health", h.HandleReport)
}

// HandleReport handles GET /api/portfolio-health
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetReport()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build health report")
		h.writeError(w, http.StatusInternalServerError, "failed to build health report")
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
