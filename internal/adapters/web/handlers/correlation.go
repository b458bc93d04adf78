package handlers

import (
	"log/slog"
	"net/http"

	"crossmarket/internal/adapters/web/views"
	"crossmarket/internal/application/usecases"
)

// CorrelationHandler handles the correlation map
type CorrelationHandler struct {
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
}

// NewCorrelationHandler creates a new correlation handler
func NewCorrelationHandler(dashboard *usecases.DashboardUseCase, logger *slog.Logger) *CorrelationHandler {
	return &CorrelationHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handle handles correlation requests
func (h *CorrelationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	m, err := h.dashboard.LoadCorrelationMatrix(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	rows := 0
	if m != nil {
		rows = m.Rows
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":   "Market Intelligence Map",
		"heatmap": views.BuildHeatmap("Correlation", m),
		"rows":    rows,
		"empty":   m == nil,
	})
}
