package postgresql

import (
	"context"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"crossmarket/internal/adapters/storage/sqlstore"
	"crossmarket/internal/application/ports"
	"crossmarket/internal/config"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

// DSN builds a lib/pq connection string from configuration.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)
}

// New creates a PostgreSQL-backed store and checks it is reachable.
func New(cfg config.DatabaseConfig) (ports.StoragePort, error) {
	store := sqlstore.New(DriverName, DSN(cfg), "$1")

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return store, nil
}
