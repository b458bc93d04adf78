package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"crossmarket/internal/adapters/web/views"
	"crossmarket/internal/application/usecases"
	"crossmarket/internal/domain/models"
)

// QueryRequest selects a catalog entry to run
type QueryRequest struct {
	Category string `json:"category"`
	Query    string `json:"query"`
}

// QueryResponse is the Query Runner view payload
type QueryResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Table   *views.TableData `json:"table"`
	Empty   bool             `json:"empty"`
	Run     models.QueryRun  `json:"run"`
}

// CategoryEntry lists the queries of one catalog category
type CategoryEntry struct {
	Name    string   `json:"name"`
	Queries []string `json:"queries"`
}

// QueryHandler handles the query runner: listing the catalog, running an
// entry and listing recent runs
type QueryHandler struct {
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(dashboard *usecases.DashboardUseCase, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// HandleCatalog returns the two-level category/query picker
func (h *QueryHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := h.dashboard.Catalog()
	entries := make([]CategoryEntry, 0, len(cat.Categories()))
	for _, name := range cat.Categories() {
		keys, err := cat.Queries(name)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		entries = append(entries, CategoryEntry{Name: name, Queries: keys})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dialect":    cat.Dialect(),
		"categories": entries,
	})
}

// HandleRun runs one catalog entry. The run action is a POST.
func (h *QueryHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method not allowed. Use POST.", http.StatusMethodNotAllowed)
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	res, err := h.dashboard.RunCatalogQuery(r.Context(), req.Category, req.Query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Success: res.Success,
		Message: res.Message,
		Table:   views.BuildTable(res.Query, res.Frame),
		Empty:   res.Frame.Len() == 0,
		Run:     res.Run,
	})
}

// HandleHistory returns recent catalog runs, newest first
func (h *QueryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			badRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.dashboard.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs": runs,
	})
}
