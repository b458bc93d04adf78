package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"crossmarket/internal/analytics"
	"crossmarket/internal/application/ports"
	"crossmarket/internal/catalog"
	"crossmarket/internal/concurrency"
	"crossmarket/internal/domain/models"
	"crossmarket/internal/synchronizer"
)

var (
	// ErrUnknownAsset is returned for an asset outside the fixed selector lists
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrNoAssets is returned when a comparison names no assets
	ErrNoAssets = errors.New("no assets selected")
)

// metricLabels name the overview summary cards.
var metricLabels = map[string]string{
	catalog.ColumnBTC:   "BTC Avg (INR)",
	catalog.ColumnOil:   "Oil Avg (INR)",
	catalog.ColumnSP500: "S&P 500 Avg",
	catalog.ColumnNifty: "NIFTY Avg",
}

// Overview is the synchronized four-market frame plus its summary cards
type Overview struct {
	Frame            *models.Frame
	Assets           []string
	NoAssetsSelected bool
	Averages         []analytics.Metric
}

// QueryResult is the outcome of one catalog query run
type QueryResult struct {
	Category string
	Query    string
	Frame    *models.Frame
	Success  bool
	Message  string
	Run      models.QueryRun
}

// DashboardUseCase binds dashboard selections to store reads
type DashboardUseCase struct {
	storage ports.StoragePort
	history ports.HistoryPort
	catalog *catalog.Catalog
	sync    synchronizer.Synchronizer
	pool    *concurrency.WorkerPool
	logger  *slog.Logger
	now     func() time.Time
}

// NewDashboardUseCase creates a new DashboardUseCase
func NewDashboardUseCase(storage ports.StoragePort, history ports.HistoryPort, cat *catalog.Catalog, logger *slog.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		storage: storage,
		history: history,
		catalog: cat,
		sync:    synchronizer.Default,
		pool:    concurrency.NewWorkerPool(len(catalog.DetailAssets), logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Catalog returns the query catalog the use case resolves against
func (uc *DashboardUseCase) Catalog() *catalog.Catalog {
	return uc.catalog
}

// LoadMarketOverview joins bitcoin, oil and two equity indices on date,
// densifies the result and keeps the rows inside rng when rng is set.
// The frame is computed even when no assets are selected.
func (uc *DashboardUseCase) LoadMarketOverview(ctx context.Context, rng *models.DateRange, assets []string) (*Overview, error) {
	for _, a := range assets {
		if !catalog.IsOverviewAsset(a) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, a)
		}
	}

	raw, err := uc.storage.QueryFrame(ctx, catalog.MarketOverviewQuery)
	if err != nil {
		return nil, fmt.Errorf("load market overview: %w", err)
	}

	frame := uc.sync.Fill(raw)
	if rng != nil {
		frame = frame.InRange(*rng)
	}

	uc.logger.Debug("Market overview loaded", "rows", frame.Len(), "assets", len(assets))

	return &Overview{
		Frame:            frame,
		Assets:           assets,
		NoAssetsSelected: len(assets) == 0,
		Averages:         analytics.Averages(frame, catalog.OverviewAssets, metricLabels),
	}, nil
}

// RunCatalogQuery resolves a catalog entry, executes it and densifies the
// result. Every executed run is recorded in the history log; a history
// failure is logged and does not fail the run.
func (uc *DashboardUseCase) RunCatalogQuery(ctx context.Context, category, key string) (*QueryResult, error) {
	query, err := uc.catalog.Resolve(category, key)
	if err != nil {
		return nil, err
	}

	start := uc.now()
	raw, err := uc.storage.QueryFrame(ctx, query)
	run := models.QueryRun{
		ID:       uuid.NewString(),
		Category: category,
		Query:    key,
		RanAt:    start,
		Duration: uc.now().Sub(start),
	}

	if err != nil {
		run.Error = err.Error()
		uc.record(ctx, run)
		uc.logger.Error("Catalog query failed", "category", category, "query", key, "error", err)
		return nil, fmt.Errorf("run %q: %w", key, err)
	}

	frame := uc.sync.Fill(raw)
	run.Rows = frame.Len()
	run.Success = true
	uc.record(ctx, run)

	uc.logger.Info("Catalog query executed", "category", category, "query", key, "rows", run.Rows, "duration", run.Duration)

	return &QueryResult{
		Category: category,
		Query:    key,
		Frame:    frame,
		Success:  true,
		Message:  "Execution Successful: " + key,
		Run:      run,
	}, nil
}

func (uc *DashboardUseCase) record(ctx context.Context, run models.QueryRun) {
	if err := uc.history.Record(ctx, run); err != nil {
		uc.logger.Warn("Failed to record query run", "id", run.ID, "error", err)
	}
}

// RecentRuns returns up to n recorded catalog runs, newest first
func (uc *DashboardUseCase) RecentRuns(ctx context.Context, n int) ([]models.QueryRun, error) {
	return uc.history.Recent(ctx, n)
}

// LoadAssetSeries returns one coin's raw history ordered by date.
func (uc *DashboardUseCase) LoadAssetSeries(ctx context.Context, assetID string) (*models.PriceSeries, error) {
	if !catalog.IsDetailAsset(assetID) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, assetID)
	}

	series, err := uc.storage.PriceSeries(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("load %s series: %w", assetID, err)
	}
	return series, nil
}

// LoadCorrelationInputs returns the raw bitcoin, oil and stock rows used
// for the correlation map.
func (uc *DashboardUseCase) LoadCorrelationInputs(ctx context.Context) (*models.Frame, error) {
	frame, err := uc.storage.QueryFrame(ctx, catalog.CorrelationQuery)
	if err != nil {
		return nil, fmt.Errorf("load correlation inputs: %w", err)
	}
	return frame, nil
}

// LoadCorrelationMatrix computes the Pearson matrix over the correlation
// inputs. It returns a nil matrix when there are too few rows.
func (uc *DashboardUseCase) LoadCorrelationMatrix(ctx context.Context) (*analytics.Matrix, error) {
	frame, err := uc.LoadCorrelationInputs(ctx)
	if err != nil {
		return nil, err
	}

	m, err := analytics.Correlate(frame)
	if errors.Is(err, analytics.ErrNotEnoughRows) {
		return nil, nil
	}
	return m, err
}

// CompareAssets aligns several coin histories on date and densifies them.
// Series are loaded concurrently.
func (uc *DashboardUseCase) CompareAssets(ctx context.Context, ids []string) (*models.Frame, error) {
	if len(ids) == 0 {
		return nil, ErrNoAssets
	}

	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if !catalog.IsDetailAsset(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, id)
		}
		seen[id] = true
		unique = append(unique, id)
	}

	series, err := uc.pool.FetchAll(ctx, unique, uc.LoadAssetSeries)
	if err != nil {
		return nil, err
	}

	return uc.sync.Fill(synchronizer.Align(series...)), nil
}

// Ping checks the store
func (uc *DashboardUseCase) Ping(ctx context.Context) error {
	return uc.storage.Ping(ctx)
}

// Driver returns the store's driver name
func (uc *DashboardUseCase) Driver() string {
	return uc.storage.Driver()
}
