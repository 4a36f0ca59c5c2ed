// Package handler implements the HTTP endpoints over the catalog, drop and
// search packages. Handlers translate engine error values into transport
// responses; no engine error escapes as a panic or a 500 without logging.
package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a {success:false, error:...} body.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Success: false, Error: msg})
}

// optSeconds is a duration that may be infinite. The JSON encoder rejects
// +Inf, so infinite values encode as null instead.
type optSeconds float64

func (s optSeconds) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}
