package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"crossmarket/internal/adapters/web/views"
	"crossmarket/internal/application/usecases"
	"crossmarket/internal/catalog"
)

// AssetsHandler handles single-asset detail and multi-asset comparison
type AssetsHandler struct {
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
}

// NewAssetsHandler creates a new assets handler
func NewAssetsHandler(dashboard *usecases.DashboardUseCase, logger *slog.Logger) *AssetsHandler {
	return &AssetsHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handle serves /assets/ (the picker list) and /assets/{id} (the detail chart)
func (h *AssetsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/assets"), "/")
	if id == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"assets": catalog.DetailAssets,
		})
		return
	}

	series, err := h.dashboard.LoadAssetSeries(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"asset":  series.AssetID,
		"points": series.Len(),
		"chart":  views.BuildAreaChart("Detailed Asset Analysis (INR)", series),
		"empty":  series.Len() == 0,
	})
}

// HandleCompare aligns several assets on date: /compare?assets=a,b
func (h *AssetsHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids := splitList(r.URL.Query().Get("assets"))
	frame, err := h.dashboard.CompareAssets(r.Context(), ids)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// one series per aligned column, so repeated ids chart once
	assets := frame.Names()[1:]

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart": views.BuildLineChart("Asset Comparison", "Price (INR)", frame, assets),
		"table": views.BuildTable("Aligned Prices", frame),
		"empty": frame.Len() == 0,
	})
}
