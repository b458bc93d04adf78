package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"crossmarket/internal/application/usecases"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(dashboard *usecases.DashboardUseCase, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handle pings the store and reports the result
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status, code, database := "healthy", http.StatusOK, "connected"
	if err := h.dashboard.Ping(r.Context()); err != nil {
		h.logger.Warn("Health check failed", "error", err)
		status, code, database = "unhealthy", http.StatusServiceUnavailable, err.Error()
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"services": map[string]string{
			"database": database,
		},
	})
}
