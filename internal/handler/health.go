package handler

import "net/http"

// Build metadata, overridable via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
)

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse reports build metadata for deployment verification.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// HandleHealthz provides a basic liveness check.
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleVersion reports the running build.
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionResponse{Version: Version, Commit: Commit})
	}
}
