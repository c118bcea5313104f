package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/kakunje/prakriti/internal/webapi"
)

// registerRoutes sets up the API and metrics routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	webapi.RegisterRoutes(mux, cfg.Handlers)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())
	mux.HandleFunc("/", handleNotFound)
}

// handleNotFound returns a JSON 404 for unknown paths.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(webapi.ErrorResponse{Error: "not found", Code: http.StatusNotFound}) //nolint:errcheck
}
