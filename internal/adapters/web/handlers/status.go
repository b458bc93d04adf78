package handlers

import (
	"log/slog"
	"net/http"

	"crossmarket/internal/application/usecases"
)

// Views lists the dashboard's navigable views.
var Views = []string{"overview", "query", "assets", "correlation"}

// StatusHandler handles status requests
type StatusHandler struct {
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(dashboard *usecases.DashboardUseCase, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handle handles status requests
func (h *StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"driver":  h.dashboard.Driver(),
		"queries": h.dashboard.Catalog().Size(),
		"views":   Views,
		"status":  "running",
	})
}
