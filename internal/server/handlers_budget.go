package server

import (
	"net/http"
	"strings"

	"github.com/adithyaharun/wallette/internal/models"
)

// --- Budget handlers ---

// handleBudgets handles /api/budgets: list (GET) and create (POST).
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		budgets, err := s.app.BudgetService.ListBudgets(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, budgets)

	case http.MethodPost:
		var budget models.Budget
		if !DecodeJSON(w, r, &budget) {
			return
		}
		created, err := s.app.BudgetService.CreateBudget(r.Context(), &budget)
		if err != nil {
			if strings.HasPrefix(err.Error(), "invalid budget") {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleBudgetRenewAll handles POST /api/budgets/renew, renewing every
// repeating budget whose period has lapsed. Per-item failures are reported
// in the response, not as an HTTP error.
func (s *Server) handleBudgetRenewAll(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	report, err := s.app.BudgetService.RenewAllExpired(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// routeBudgets handles /api/budgets/{id} and /api/budgets/{id}/renew.
func (s *Server) routeBudgets(w http.ResponseWriter, r *http.Request) {
	suffix := pathSuffix(r, "/api/budgets/")
	if suffix == "" {
		WriteError(w, http.StatusNotFound, "Budget id is required")
		return
	}

	if id, ok := strings.CutSuffix(suffix, "/renew"); ok {
		s.handleBudgetRenew(w, r, id)
		return
	}
	if strings.Contains(suffix, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		budget, err := s.app.BudgetService.GetBudget(r.Context(), suffix)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, budget)

	case http.MethodDelete:
		if err := s.app.BudgetService.DeleteBudget(r.Context(), suffix); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleBudgetRenew handles POST /api/budgets/{id}/renew.
func (s *Server) handleBudgetRenew(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	budget, err := s.app.BudgetService.GetBudget(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	newID, err := s.app.BudgetService.Renew(r.Context(), budget)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": newID})
}
