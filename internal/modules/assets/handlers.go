package assets

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
)

// Handler handles asset HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new assets handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "assets").Logger(),
	}
}

// RegisterRoutes registers all asset routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Route("/fixed-deposits", func(r chi.Router) {
			r.Get("/", h.list(func() (interface{}, error) { return h.repo.GetFixedDeposits() }))
			r.Post("/", h.HandleCreateFixedDeposit)
			r.Put("/{id}/status", h.HandleUpdateFixedDepositStatus)
			r.Delete("/{id}", h.del(h.repo.DeleteFixedDeposit))
		})
		r.Route("/epf", func(r chi.Router) {
			r.Get("/", h.list(func() (interface{}, error) { return h.repo.GetEPFAccounts() }))
			r.Post("/", h.HandleCreateEPFAccount)
			r.Put("/{id}/balance", h.updateValue(h.repo.UpdateEPFBalance))
			r.Delete("/{id}", h.del(h.repo.DeleteEPFAccount))
		})
		r.Route("/nps", func(r chi.Router) {
			r.Get("/", h.list(func() (interface{}, error) { return h.repo.GetNPSAccounts() }))
			r.Post("/", h.HandleCreateNPSAccount)
			r.Put("/{id}/value", h.updateValue(h.repo.UpdateNPSValue))
			r.Delete("/{id}", h.del(h.repo.DeleteNPSAccount))
		})
		r.Route("/savings", func(r chi.Router) {
			r.Get("/", h.list(func() (interface{}, error) { return h.repo.GetSavingsAccounts() }))
			r.Post("/", h.HandleCreateSavingsAccount)
			r.Put("/{id}/balance", h.updateValue(h.repo.UpdateSavingsBalance))
			r.Delete("/{id}", h.del(h.repo.DeleteSavingsAccount))
		})
		r.Route("/lending", func(r chi.Router) {
			r.Get("/", h.list(func() (interface{}, error) { return h.repo.GetLendingRecords() }))
			r.Post("/", h.HandleCreateLendingRecord)
			r.Put("/{id}/outstanding", h.updateValue(h.repo.UpdateLendingOutstanding))
			r.Delete("/{id}", h.del(h.repo.DeleteLendingRecord))
		})
		r.Route("/other", func(r chi.Router) {
			r.Get("/", h.list(func() (interface{}, error) { return h.repo.GetOtherInvestments() }))
			r.Post("/", h.HandleCreateOtherInvestment)
			r.Put("/{id}/value", h.updateValue(h.repo.UpdateOtherInvestmentValue))
			r.Delete("/{id}", h.del(h.repo.DeleteOtherInvestment))
		})
	})
}

// list adapts a repository getter into a GET handler.
func (h *Handler) list(get func() (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := get()
		if err != nil {
			h.log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to list assets")
			h.writeError(w, http.StatusInternalServerError, "failed to list assets")
			return
		}
		h.writeJSON(w, http.StatusOK, data)
	}
}

// del adapts a repository delete into a DELETE handler.
func (h *Handler) del(remove func(id int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := remove(id); err != nil {
			h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete asset")
			h.writeError(w, http.StatusInternalServerError, "failed to delete asset")
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	}
}

// updateValue adapts a single-amount repository update into a PUT handler
// accepting {"value": n}.
func (h *Handler) updateValue(update func(id int64, value float64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		var req struct {
			Value float64 `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := update(id, req.Value); err != nil {
			h.log.Error().Err(err).Int64("id", id).Msg("Failed to update asset")
			h.writeError(w, http.StatusInternalServerError, "failed to update asset")
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
	}
}

// HandleCreateFixedDeposit handles POST /api/assets/fixed-deposits
func (h *Handler) HandleCreateFixedDeposit(w http.ResponseWriter, r *http.Request) {
	var fd domain.FixedDeposit
	if err := json.NewDecoder(r.Body).Decode(&fd); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fd.BankName == "" || fd.Principal <= 0 {
		h.writeError(w, http.StatusBadRequest, "bank_name and positive principal_amount are required")
		return
	}
	if err := h.repo.CreateFixedDeposit(&fd); err != nil {
		h.log.Error().Err(err).Msg("Failed to create fixed deposit")
		h.writeError(w, http.StatusInternalServerError, "failed to create fixed deposit")
		return
	}
	h.writeJSON(w, http.StatusCreated, fd)
}

// HandleUpdateFixedDepositStatus handles PUT /api/assets/fixed-deposits/{id}/status
func (h *Handler) HandleUpdateFixedDepositStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != domain.AssetStatusActive && req.Status != domain.AssetStatusClosed {
		h.writeError(w, http.StatusBadRequest, "status must be active or closed")
		return
	}
	if err := h.repo.UpdateFixedDepositStatus(id, req.Status); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to update fixed deposit status")
		h.writeError(w, http.StatusInternalServerError, "failed to update fixed deposit")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// HandleCreateEPFAccount handles POST /api/assets/epf
func (h *Handler) HandleCreateEPFAccount(w http.ResponseWriter, r *http.Request) {
	var acct domain.EPFAccount
	if err := json.NewDecoder(r.Body).Decode(&acct); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if acct.EmployerName == "" {
		h.writeError(w, http.StatusBadRequest, "employer_name is required")
		return
	}
	if acct.CurrentBalance == 0 {
		acct.CurrentBalance = acct.OpeningBalance
	}
	if err := h.repo.CreateEPFAccount(&acct); err != nil {
		h.log.Error().Err(err).Msg("Failed to create EPF account")
		h.writeError(w, http.StatusInternalServerError, "failed to create EPF account")
		return
	}
	h.writeJSON(w, http.StatusCreated, acct)
}

// HandleCreateNPSAccount handles POST /api/assets/nps
func (h *Handler) HandleCreateNPSAccount(w http.ResponseWriter, r *http.Request) {
	var acct domain.NPSAccount
	if err := json.NewDecoder(r.Body).Decode(&acct); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if acct.AccountNumber == "" {
		h.writeError(w, http.StatusBadRequest, "account_number is required")
		return
	}
	if acct.CurrentValue == 0 {
		acct.CurrentValue = acct.OpeningBalance
	}
	if err := h.repo.CreateNPSAccount(&acct); err != nil {
		h.log.Error().Err(err).Msg("Failed to create NPS account")
		h.writeError(w, http.StatusInternalServerError, "failed to create NPS account")
		return
	}
	h.writeJSON(w, http.StatusCreated, acct)
}

// HandleCreateSavingsAccount handles POST /api/assets/savings
func (h *Handler) HandleCreateSavingsAccount(w http.ResponseWriter, r *http.Request) {
	var acct domain.SavingsAccount
	if err := json.NewDecoder(r.Body).Decode(&acct); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if acct.BankName == "" {
		h.writeError(w, http.StatusBadRequest, "bank_name is required")
		return
	}
	if err := h.repo.CreateSavingsAccount(&acct); err != nil {
		h.log.Error().Err(err).Msg("Failed to create savings account")
		h.writeError(w, http.StatusInternalServerError, "failed to create savings account")
		return
	}
	h.writeJSON(w, http.StatusCreated, acct)
}

// HandleCreateLendingRecord handles POST /api/assets/lending
func (h *Handler) HandleCreateLendingRecord(w http.ResponseWriter, r *http.Request) {
	var rec domain.LendingRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if rec.Borrower == "" || rec.Principal <= 0 {
		h.writeError(w, http.StatusBadRequest, "borrower and positive principal_amount are required")
		return
	}
	if err := h.repo.CreateLendingRecord(&rec); err != nil {
		h.log.Error().Err(err).Msg("Failed to create lending record")
		h.writeError(w, http.StatusInternalServerError, "failed to create lending record")
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// HandleCreateOtherInvestment handles POST /api/assets/other
func (h *Handler) HandleCreateOtherInvestment(w http.ResponseWriter, r *http.Request) {
	var inv domain.OtherInvestment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if inv.Description == "" || inv.PurchaseValue <= 0 {
		h.writeError(w, http.StatusBadRequest, "description and positive purchase_value are required")
		return
	}
	if err := h.repo.CreateOtherInvestment(&inv); err != nil {
		h.log.Error().Err(err).Msg("Failed to create other investment")
		h.writeError(w, http.StatusInternalServerError, "failed to create other investment")
		return
	}
	h.writeJSON(w, http.StatusCreated, inv)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
