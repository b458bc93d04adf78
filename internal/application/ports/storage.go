package ports

import (
	"context"
	"errors"

	"crossmarket/internal/domain/models"
)

// ErrStoreUnavailable wraps failures to reach the store.
var ErrStoreUnavailable = errors.New("store unavailable")

// StoragePort defines read-only access to the price store
type StoragePort interface {
	// QueryFrame runs a read-only statement and returns its result set
	QueryFrame(ctx context.Context, query string) (*models.Frame, error)

	// PriceSeries returns the date-ordered history of one coin
	PriceSeries(ctx context.Context, coinID string) (*models.PriceSeries, error)

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// Driver returns the database/sql driver name
	Driver() string
}
