package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crossmarket/internal/application/ports"
	"crossmarket/internal/config"
	"crossmarket/internal/domain/models"
)

// HistoryKey is the Redis list holding recent query runs, newest first.
const HistoryKey = "crossmarket:history:runs"

// Adapter implements the HistoryPort interface for Redis
type Adapter struct {
	client *redis.Client
	limit  int64
}

// New creates a new Redis adapter
func New(cfg config.CacheConfig) (ports.HistoryPort, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client, cfg.HistoryLen), nil
}

// NewWithClient wraps an existing client. limit caps the list length.
func NewWithClient(client *redis.Client, limit int) *Adapter {
	if limit <= 0 {
		limit = 50
	}
	return &Adapter{
		client: client,
		limit:  int64(limit),
	}
}

// Record pushes a run to the head of the list and trims the tail
func (a *Adapter) Record(ctx context.Context, run models.QueryRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	_, err = a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, HistoryKey, data)
		pipe.LTrim(ctx, HistoryKey, 0, a.limit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record query run: %w", err)
	}
	return nil
}

// Recent returns up to n runs, newest first. Unreadable entries are skipped.
func (a *Adapter) Recent(ctx context.Context, n int) ([]models.QueryRun, error) {
	if n <= 0 || int64(n) > a.limit {
		n = int(a.limit)
	}

	values, err := a.client.LRange(ctx, HistoryKey, 0, int64(n)-1).Result()
	if err != nil {
		if err == redis.Nil {
			return []models.QueryRun{}, nil
		}
		return nil, err
	}

	runs := make([]models.QueryRun, 0, len(values))
	for _, value := range values {
		var run models.QueryRun
		if err := json.Unmarshal([]byte(value), &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// Close closes the cache connection
func (a *Adapter) Close() error {
	return a.client.Close()
}
