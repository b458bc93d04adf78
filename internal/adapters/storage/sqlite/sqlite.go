package sqlite

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"crossmarket/internal/adapters/storage/sqlstore"
	"crossmarket/internal/application/ports"
	"crossmarket/internal/config"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DSN opens the file with writes refused at the connection level.
func DSN(path string) string {
	return path + "?_pragma=query_only(1)"
}

// New creates a store over an existing SQLite file.
func New(cfg config.DatabaseConfig) (ports.StoragePort, error) {
	// sqlite would silently create a missing file
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("sqlite database %s: %w", cfg.Path, err)
	}

	store := sqlstore.New(DriverName, DSN(cfg.Path), "?")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", cfg.Path, err)
	}

	return store, nil
}
