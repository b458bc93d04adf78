package concurrency

import (
	"context"
	"log/slog"
	"sync"

	"crossmarket/internal/domain/models"
)

// FetchFunc loads one asset's price series
type FetchFunc func(ctx context.Context, assetID string) (*models.PriceSeries, error)

type job struct {
	index   int
	assetID string
}

type result struct {
	index  int
	series *models.PriceSeries
	err    error
}

// WorkerPool loads several price series concurrently
type WorkerPool struct {
	workers int
	logger  *slog.Logger
}

// NewWorkerPool creates a new worker pool. At least one worker always runs.
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		logger:  logger,
	}
}

// FetchAll loads every asset with fetch and returns the series in the order
// of assetIDs. The first error cancels the remaining work and is returned.
func (wp *WorkerPool) FetchAll(ctx context.Context, assetIDs []string, fetch FetchFunc) ([]models.PriceSeries, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputCh := make(chan job)
	outputCh := make(chan result, len(assetIDs))

	workers := wp.workers
	if workers > len(assetIDs) {
		workers = len(assetIDs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go wp.worker(ctx, i, &wg, fetch, inputCh, outputCh)
	}

	go func() {
		defer close(inputCh)
		for i, id := range assetIDs {
			select {
			case inputCh <- job{index: i, assetID: id}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outputCh)
	}()

	out := make([]models.PriceSeries, len(assetIDs))
	var firstErr error
	for res := range outputCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		out[res.index] = *res.series
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (wp *WorkerPool) worker(ctx context.Context, id int, wg *sync.WaitGroup, fetch FetchFunc, inputCh <-chan job, outputCh chan<- result) {
	defer wg.Done()

	wp.logger.Debug("Worker started", "worker_id", id)
	defer wp.logger.Debug("Worker stopped", "worker_id", id)

	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-inputCh:
			if !ok {
				return
			}
			series, err := fetch(ctx, j.assetID)
			// outputCh is buffered for every job, so this never blocks
			outputCh <- result{index: j.index, series: series, err: err}
		}
	}
}
