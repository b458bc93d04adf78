package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"crossmarket/internal/adapters/web/views"
	"crossmarket/internal/analytics"
	"crossmarket/internal/application/usecases"
	"crossmarket/internal/catalog"
	"crossmarket/internal/domain/models"
)

// NoAssetsWarning is shown instead of the trend chart for an empty selection.
const NoAssetsWarning = "Please select at least one asset to view the trend chart."

// OverviewResponse is the Overview view payload
type OverviewResponse struct {
	Title   string             `json:"title"`
	Assets  []string           `json:"assets"`
	Metrics []analytics.Metric `json:"metrics"`
	Chart   *views.ChartConfig `json:"chart,omitempty"`
	Warning string             `json:"warning,omitempty"`
	Table   *views.TableData   `json:"table"`
	Empty   bool               `json:"empty"`
}

// OverviewHandler handles market overview requests
type OverviewHandler struct {
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(dashboard *usecases.DashboardUseCase, logger *slog.Logger) *OverviewHandler {
	return &OverviewHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handle handles overview requests.
// Query parameters: start, end (YYYY-MM-DD, both or neither) and assets
// (comma separated; absent selects all, empty selects none).
func (h *OverviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()

	var rng *models.DateRange
	start, end := q.Get("start"), q.Get("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			badRequest(w, "start and end must be given together")
			return
		}
		var err error
		rng, err = models.NewDateRange(start, end)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
	}

	assets := catalog.OverviewAssets
	if _, ok := q["assets"]; ok {
		assets = splitList(q.Get("assets"))
	}

	ov, err := h.dashboard.LoadMarketOverview(r.Context(), rng, assets)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response := OverviewResponse{
		Title:   "Global Market Dashboard (INR)",
		Assets:  ov.Assets,
		Metrics: ov.Averages,
		Table:   views.BuildTable("Daily Market Snapshot", ov.Frame),
		Empty:   ov.Frame.Len() == 0,
	}
	if ov.NoAssetsSelected {
		response.Warning = NoAssetsWarning
	} else {
		response.Chart = views.BuildLineChart("Price Trend Comparison", "Price (INR)", ov.Frame, ov.Assets)
	}

	writeJSON(w, http.StatusOK, response)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
