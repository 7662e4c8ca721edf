// Package health exposes the two liveness endpoints the original
// health_server.py served: a dependency-aware /health that reflects
// engine readiness, and a bare /ping that only proves the process is up.
// This stands in for the out-of-scope HTTP probe infrastructure; only
// its interface to the Facade is specified.
package health

import (
	"encoding/json"
	"net/http"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/facade"
)

type statusResponse struct {
	Status string `json:"status"`
}

// Handler serves /health and /ping against f's readiness.
type Handler struct {
	facade *facade.Facade
}

// NewHandler returns a Handler reporting f's readiness.
func NewHandler(f *facade.Facade) *Handler {
	return &Handler{facade: f}
}

// Register attaches the two endpoints to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/ping", h.handlePing)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !h.facade.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(statusResponse{Status: "not_ready"})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(statusResponse{Status: "ok"})
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(statusResponse{Status: "ok"})
}
