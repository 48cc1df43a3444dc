package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// --- Transaction handlers ---

// handleTransactions handles /api/transactions: list by asset (GET) and
// create (POST).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		assetID := r.URL.Query().Get("asset_id")
		if assetID == "" {
			WriteError(w, http.StatusBadRequest, "asset_id query parameter is required")
			return
		}
		until := time.Time{}
		if v := r.URL.Query().Get("until"); v != "" {
			parsed, err := models.ParseDay(v)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid until date, expected YYYY-MM-DD")
				return
			}
			until = parsed
		}
		txs, err := s.app.TransactionService.ListTransactions(r.Context(), assetID, until)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, txs)

	case http.MethodPost:
		var req interfaces.CreateTransactionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		tx, err := s.app.TransactionService.CreateTransaction(r.Context(), req)
		if err != nil {
			if strings.HasPrefix(err.Error(), "invalid transaction") {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, tx)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeTransactions handles /api/transactions/{id}.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	id := pathSuffix(r, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Transaction id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := s.app.TransactionService.GetTransaction(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, tx)

	case http.MethodPatch:
		var req interfaces.UpdateTransactionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		tx, err := s.app.TransactionService.UpdateTransaction(r.Context(), id, req)
		if err != nil {
			if strings.HasPrefix(err.Error(), "invalid transaction") {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, tx)

	case http.MethodDelete:
		if err := s.app.TransactionService.DeleteTransaction(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

// handleCategories handles /api/categories: list (GET) and create (POST).
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := s.app.TransactionService.ListCategories(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var req struct {
			Name string              `json:"name"`
			Type models.CategoryType `json:"type"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		category, err := s.app.TransactionService.CreateCategory(r.Context(), req.Name, req.Type)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, category)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}
