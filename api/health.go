package api

import (
	"log/slog"
	"net/http"

	"github.com/arogyasathi/sathi/internal/knowledge"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	know   *knowledge.Store
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler.
// know is the knowledge store used for readiness checks.
func NewHealthHandler(know *knowledge.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{know: know, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Arogya Sathi API",
	})
}

// readiness is a readiness probe endpoint.
// Returns 200 OK once the knowledge base has been seeded.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.know == nil || h.know.Count() == 0 {
		h.logger.Error("readiness check failed: knowledge base empty")
		writeError(w, http.StatusServiceUnavailable, "not_ready", "knowledge base not seeded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"documents": h.know.Count(),
	})
}
