package ports

import (
	"context"

	"crossmarket/internal/domain/models"
)

// HistoryPort keeps a bounded log of catalog query runs
type HistoryPort interface {
	// Record appends a run to the log
	Record(ctx context.Context, run models.QueryRun) error

	// Recent returns up to n runs, newest first
	Recent(ctx context.Context, n int) ([]models.QueryRun, error)

	// Close releases the underlying connection
	Close() error
}
