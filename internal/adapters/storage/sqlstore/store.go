package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"crossmarket/internal/application/ports"
	"crossmarket/internal/catalog"
	"crossmarket/internal/domain/models"
)

// Store implements the StoragePort interface over database/sql. Every call
// opens its own handle, uses a single connection and closes it on return;
// no connection outlives the operation that opened it.
type Store struct {
	driver      string
	dsn         string
	placeholder string
}

// New creates a store for a registered driver. The driver package must be
// imported by the caller.
func New(driver, dsn, placeholder string) *Store {
	return &Store{
		driver:      driver,
		dsn:         dsn,
		placeholder: placeholder,
	}
}

// Driver returns the database/sql driver name
func (s *Store) Driver() string {
	return s.driver
}

// withConn acquires one connection for the duration of fn.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) (err error) {
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", ports.ErrStoreUnavailable, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}()
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to connect: %v", ports.ErrStoreUnavailable, err)
	}
	defer conn.Close()

	return fn(conn)
}

// Ping checks that the store is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		if err := conn.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: failed to ping database: %v", ports.ErrStoreUnavailable, err)
		}
		return nil
	})
}

// QueryFrame runs a read-only statement and returns its result set
func (s *Store) QueryFrame(ctx context.Context, query string) (*models.Frame, error) {
	var frame *models.Frame
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		defer rows.Close()

		frame, err = readFrame(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return frame, nil
}

// PriceSeries returns the date-ordered history of one coin. Rows with a
// NULL price are skipped.
func (s *Store) PriceSeries(ctx context.Context, coinID string) (*models.PriceSeries, error) {
	series := &models.PriceSeries{AssetID: coinID, Points: []models.PricePoint{}}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, catalog.AssetSeriesQuery(s.placeholder), coinID)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				rawDate any
				price   sql.NullFloat64
			)
			if err := rows.Scan(&rawDate, &price); err != nil {
				return err
			}
			if !price.Valid {
				continue
			}
			date, ok := toTime(rawDate)
			if !ok {
				return fmt.Errorf("unreadable date %v for %s", rawDate, coinID)
			}
			series.Points = append(series.Points, models.PricePoint{Date: date, Price: price.Float64})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return series, nil
}
