package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tuxkoh/rng-backend/internal/catalog"
	"github.com/tuxkoh/rng-backend/internal/logger"
	"github.com/tuxkoh/rng-backend/internal/metrics"
	"github.com/tuxkoh/rng-backend/internal/search"
)

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// SearchResponse carries the ordered (name, score) pairs.
type SearchResponse struct {
	Success bool            `json:"success"`
	Results []search.Result `json:"results"`
}

// HandleSearch performs a fuzzy lookup over the merged catalog's item names.
func HandleSearch(loader *catalog.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode search request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid search request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		snap, err := loader.Snapshot()
		if err != nil {
			log.Error("Failed to load catalog", "error", err)
			respondError(w, http.StatusInternalServerError, "Catalog unavailable")
			return
		}

		results := search.Query(req.Query, snap.Names())
		if results == nil {
			results = []search.Result{}
		}

		metrics.SearchesTotal.Inc()
		log.Debug("Search completed", "query", req.Query, "matches", len(results))

		respondJSON(w, http.StatusOK, SearchResponse{Success: true, Results: results})
	}
}
