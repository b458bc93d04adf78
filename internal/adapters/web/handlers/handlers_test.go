package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"crossmarket/internal/adapters/history/noop"
	"crossmarket/internal/application/ports"
	"crossmarket/internal/application/usecases"
	"crossmarket/internal/catalog"
	"crossmarket/internal/domain/models"
)

type fakeStorage struct {
	frames map[string]*models.Frame
	series map[string]*models.PriceSeries
	err    error
}

func (f *fakeStorage) QueryFrame(_ context.Context, query string) (*models.Frame, error) {
	if f.err != nil {
		return nil, f.err
	}
	if fr, ok := f.frames[query]; ok {
		return fr, nil
	}
	return &models.Frame{}, nil
}

func (f *fakeStorage) PriceSeries(_ context.Context, coinID string) (*models.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.series[coinID]; ok {
		return s, nil
	}
	return &models.PriceSeries{AssetID: coinID}, nil
}

func (f *fakeStorage) Ping(context.Context) error { return f.err }
func (f *fakeStorage) Driver() string             { return "fake" }

var _ ports.StoragePort = (*fakeStorage)(nil)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func overviewFrame() *models.Frame {
	return &models.Frame{Columns: []models.Column{
		models.NewDateColumn(catalog.ColumnEntryDate, null.TimeFrom(day(1)), null.TimeFrom(day(2)), null.TimeFrom(day(3))),
		models.NewNumberColumn(catalog.ColumnBTC, null.FloatFrom(100), null.FloatFrom(110), null.FloatFrom(120)),
		models.NewNumberColumn(catalog.ColumnOil, null.FloatFrom(70), null.FloatFrom(0), null.FloatFrom(72)),
		models.NewNumberColumn(catalog.ColumnSP500, null.FloatFrom(4700), null.FloatFrom(4710), null.FloatFrom(4720)),
		models.NewNumberColumn(catalog.ColumnNifty, null.FloatFrom(21000), null.FloatFrom(21010), null.FloatFrom(21020)),
	}}
}

func newDashboard(store *fakeStorage) (*usecases.DashboardUseCase, *slog.Logger) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecases.NewDashboardUseCase(store, noop.New(), catalog.New(catalog.Postgres), logger), logger
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestOverview_AllAssets(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{frames: map[string]*models.Frame{catalog.MarketOverviewQuery: overviewFrame()}})
	h := NewOverviewHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/overview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp OverviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Chart == nil || len(resp.Chart.Series) != 4 {
		t.Fatalf("expected a four-series chart, got %+v", resp.Chart)
	}
	if resp.Warning != "" {
		t.Errorf("unexpected warning %q", resp.Warning)
	}
	if resp.Table.Rows[1][2] != "70.00" {
		t.Errorf("oil gap should be forward filled, got %q", resp.Table.Rows[1][2])
	}
	if len(resp.Metrics) != 4 || resp.Metrics[0].Display != "₹110.00" {
		t.Errorf("unexpected metrics: %+v", resp.Metrics)
	}
}

func TestOverview_NoAssetsSelected(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{frames: map[string]*models.Frame{catalog.MarketOverviewQuery: overviewFrame()}})
	h := NewOverviewHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/overview?assets=", nil))

	var resp OverviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Chart != nil || resp.Warning != NoAssetsWarning {
		t.Errorf("expected warning instead of chart, got %+v", resp)
	}
	if len(resp.Table.Rows) != 3 {
		t.Errorf("table should still be rendered, got %d rows", len(resp.Table.Rows))
	}
}

func TestOverview_BadRequests(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{})
	h := NewOverviewHandler(uc, logger)

	for _, target := range []string{
		"/overview?start=2024-01-01",
		"/overview?start=2024-02-01&end=2024-01-01",
		"/overview?start=yesterday&end=2024-01-01",
		"/overview?assets=DOGE_INR",
	} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/overview", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestOverview_StoreDown(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{err: ports.ErrStoreUnavailable})
	h := NewOverviewHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/overview", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if body := decode(t, rec); body["error"] == "" {
		t.Error("expected error message")
	}
}

func TestQuery_Catalog(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{})
	h := NewQueryHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.HandleCatalog(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	body := decode(t, rec)
	if body["dialect"] != "postgres" {
		t.Errorf("unexpected dialect %v", body["dialect"])
	}
	categories := body["categories"].([]interface{})
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["name"] != catalog.CryptoAttributes {
		t.Errorf("unexpected first category %v", first["name"])
	}
}

func TestQuery_Run(t *testing.T) {
	c := catalog.New(catalog.Postgres)
	sql, _ := c.Resolve(catalog.OilAnalysis, "Q13: Highest Oil Peak")
	uc, logger := newDashboard(&fakeStorage{frames: map[string]*models.Frame{
		sql: {Columns: []models.Column{models.NewNumberColumn("Peak_Oil_INR", null.FloatFrom(80))}},
	}})
	h := NewQueryHandler(uc, logger)

	body := `{"category":"3. Oil Analysis","query":"Q13: Highest Oil Peak"}`
	rec := httptest.NewRecorder()
	h.HandleRun(rec, httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Message != "Execution Successful: Q13: Highest Oil Peak" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Table.Rows[0][0] != "80.00" || resp.Empty {
		t.Errorf("unexpected table: %+v", resp.Table)
	}
	if resp.Run.ID == "" {
		t.Error("expected a run id")
	}
}

func TestQuery_RunErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		store  *fakeStorage
		want   int
	}{
		{"wrong method", http.MethodGet, "", &fakeStorage{}, http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, "{", &fakeStorage{}, http.StatusBadRequest},
		{"unknown category", http.MethodPost, `{"category":"9. Nope","query":"Q1"}`, &fakeStorage{}, http.StatusBadRequest},
		{"unknown query", http.MethodPost, `{"category":"3. Oil Analysis","query":"Q99"}`, &fakeStorage{}, http.StatusBadRequest},
		{"store failure", http.MethodPost, `{"category":"3. Oil Analysis","query":"Q13: Highest Oil Peak"}`, &fakeStorage{err: errors.New("boom")}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, logger := newDashboard(tt.store)
			h := NewQueryHandler(uc, logger)
			rec := httptest.NewRecorder()
			h.HandleRun(rec, httptest.NewRequest(tt.method, "/query", strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestQuery_History(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{})
	h := NewQueryHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.HandleHistory(rec, httptest.NewRequest(http.MethodGet, "/history?limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if runs, ok := decode(t, rec)["runs"].([]interface{}); !ok || len(runs) != 0 {
		t.Errorf("expected empty run list, got %v", runs)
	}

	rec = httptest.NewRecorder()
	h.HandleHistory(rec, httptest.NewRequest(http.MethodGet, "/history?limit=-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAssets_Detail(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{series: map[string]*models.PriceSeries{
		"solana": {AssetID: "solana", Points: []models.PricePoint{{Date: day(1), Price: 90}, {Date: day(2), Price: 95}}},
	}})
	h := NewAssetsHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/assets/solana", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["asset"] != "solana" || body["points"].(float64) != 2 || body["empty"] != false {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestAssets_ListAndUnknown(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{})
	h := NewAssetsHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/assets", nil))
	if assets := decode(t, rec)["assets"].([]interface{}); len(assets) != len(catalog.DetailAssets) {
		t.Errorf("expected %d assets, got %d", len(catalog.DetailAssets), len(assets))
	}

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/assets/dogecoin", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/assets/tether", nil))
	if body := decode(t, rec); body["empty"] != true || body["chart"] != nil {
		t.Errorf("expected empty result without chart, got %v", body)
	}
}

func TestAssets_Compare(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{series: map[string]*models.PriceSeries{
		"bitcoin":  {AssetID: "bitcoin", Points: []models.PricePoint{{Date: day(1), Price: 10}, {Date: day(2), Price: 11}}},
		"ethereum": {AssetID: "ethereum", Points: []models.PricePoint{{Date: day(2), Price: 2}}},
	}})
	h := NewAssetsHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.HandleCompare(rec, httptest.NewRequest(http.MethodGet, "/compare?assets=bitcoin,ethereum", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	rows := body["table"].(map[string]interface{})["rows"].([]interface{})
	if len(rows) != 2 {
		t.Errorf("expected 2 aligned rows, got %d", len(rows))
	}

	rec = httptest.NewRecorder()
	h.HandleCompare(rec, httptest.NewRequest(http.MethodGet, "/compare?assets=bitcoin,bitcoin", nil))
	series := decode(t, rec)["chart"].(map[string]interface{})["series"].([]interface{})
	if len(series) != 1 {
		t.Errorf("repeated id should chart once, got %d series", len(series))
	}

	rec = httptest.NewRecorder()
	h.HandleCompare(rec, httptest.NewRequest(http.MethodGet, "/compare", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty comparison, got %d", rec.Code)
	}
}

func TestCorrelation(t *testing.T) {
	frame := &models.Frame{Columns: []models.Column{
		models.NewNumberColumn("BTC_INR", null.FloatFrom(1), null.FloatFrom(2), null.FloatFrom(3)),
		models.NewNumberColumn("Oil_INR", null.FloatFrom(2), null.FloatFrom(4), null.FloatFrom(6)),
	}}
	uc, logger := newDashboard(&fakeStorage{frames: map[string]*models.Frame{catalog.CorrelationQuery: frame}})
	h := NewCorrelationHandler(uc, logger)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/correlation", nil))
	body := decode(t, rec)
	if body["empty"] != false || body["rows"].(float64) != 3 || body["heatmap"] == nil {
		t.Errorf("unexpected body: %v", body)
	}

	uc, logger = newDashboard(&fakeStorage{})
	h = NewCorrelationHandler(uc, logger)
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/correlation", nil))
	if body := decode(t, rec); body["empty"] != true || body["heatmap"] != nil {
		t.Errorf("expected empty map, got %v", body)
	}
}

func TestHealth(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{})
	rec := httptest.NewRecorder()
	NewHealthHandler(uc, logger).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "healthy" {
		t.Errorf("expected healthy, got %d %s", rec.Code, rec.Body.String())
	}

	uc, logger = newDashboard(&fakeStorage{err: ports.ErrStoreUnavailable})
	rec = httptest.NewRecorder()
	NewHealthHandler(uc, logger).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	uc, logger := newDashboard(&fakeStorage{})
	rec := httptest.NewRecorder()
	NewStatusHandler(uc, logger).Handle(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	body := decode(t, rec)
	if body["driver"] != "fake" || body["queries"].(float64) != 30 {
		t.Errorf("unexpected status: %v", body)
	}
}
