package noop

import (
	"context"

	"crossmarket/internal/domain/models"
)

// History is a no-op implementation used when Redis is not configured.
type History struct{}

// New creates a history that records nothing
func New() *History {
	return &History{}
}

// Record discards the run
func (h *History) Record(_ context.Context, _ models.QueryRun) error {
	return nil
}

// Recent always returns an empty, non-nil list
func (h *History) Recent(_ context.Context, _ int) ([]models.QueryRun, error) {
	return []models.QueryRun{}, nil
}

// Close does nothing
func (h *History) Close() error {
	return nil
}
