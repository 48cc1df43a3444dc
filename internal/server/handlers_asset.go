package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/adithyaharun/wallette/internal/interfaces"
	"github.com/adithyaharun/wallette/internal/models"
)

// --- Asset handlers ---

// handleAssets handles /api/assets: list (GET) and create (POST).
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		assets, err := s.app.AssetService.ListAssets(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, assets)

	case http.MethodPost:
		var req interfaces.CreateAssetRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		asset, err := s.app.AssetService.CreateAsset(r.Context(), req)
		if err != nil {
			if strings.HasPrefix(err.Error(), "invalid asset") {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, asset)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeAssets handles /api/assets/{id} and /api/assets/{id}/recalculate.
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	suffix := pathSuffix(r, "/api/assets/")
	if suffix == "" {
		WriteError(w, http.StatusNotFound, "Asset id is required")
		return
	}

	if id, ok := strings.CutSuffix(suffix, "/recalculate"); ok {
		s.handleAssetRecalculate(w, r, id)
		return
	}
	if strings.Contains(suffix, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		asset, err := s.app.AssetService.GetAsset(r.Context(), suffix)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, asset)

	case http.MethodPatch:
		var req interfaces.UpdateAssetRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		asset, err := s.app.AssetService.UpdateAsset(r.Context(), suffix, req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, asset)

	case http.MethodDelete:
		if err := s.app.AssetService.DeleteAsset(r.Context(), suffix); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

// handleAssetRecalculate handles POST /api/assets/{id}/recalculate. It rebuilds
// the asset's balance and snapshot history from its transaction log.
func (s *Server) handleAssetRecalculate(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	upTo := time.Time{}
	if v := r.URL.Query().Get("up_to"); v != "" {
		parsed, err := models.ParseDay(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid up_to date, expected YYYY-MM-DD")
			return
		}
		upTo = parsed
	}

	result, err := s.app.BalanceService.ResetAndRecalculate(r.Context(), id, upTo)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
