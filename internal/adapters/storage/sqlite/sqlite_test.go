package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"crossmarket/internal/application/ports"
	"crossmarket/internal/catalog"
	"crossmarket/internal/config"
	"crossmarket/internal/domain/models"
)

const schema = `
CREATE TABLE cryptocurrencies (
	id INTEGER PRIMARY KEY, name TEXT, symbol TEXT, market_cap REAL, circulating_supply REAL,
	total_supply REAL, current_price REAL, ath REAL, market_cap_rank INTEGER, total_volume REAL
);
CREATE TABLE crypto_prices (coin_id TEXT, date DATE, price_usd REAL);
CREATE TABLE oil_prices (date DATE, price_usd REAL);
CREATE TABLE stock_prices (ticker TEXT, date DATE, close REAL, high REAL, low REAL, volume REAL);
`

// seed writes ten January 2024 days of prices. The S&P 500 feed reports a
// zero close on the 6th and 7th, which the dashboard treats as gaps.
// Extra statements run after the base rows.
func seed(t *testing.T, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.db")
	db, err := sql.Open(DriverName, path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stmts := []string{schema,
		`INSERT INTO cryptocurrencies VALUES
			(1, 'Bitcoin', 'btc', 1800000, 19.6, 21, 95000, 100000, 1, 30000000000),
			(2, 'Ethereum', 'eth', 400000, 120, 120, 3300, 4800, 2, 15000000000),
			(3, 'Tether', 'usdt', 120000, 110, 115, 1, 1.3, 3, 50000000000)`,
	}
	for d := 1; d <= 10; d++ {
		date := fmt.Sprintf("2024-01-%02d", d)
		gspc := float64(4700 + d)
		if d == 6 || d == 7 {
			gspc = 0
		}
		stmts = append(stmts,
			fmt.Sprintf(`INSERT INTO crypto_prices VALUES ('bitcoin', '%s', %d)`, date, 40000+d*100),
			fmt.Sprintf(`INSERT INTO crypto_prices VALUES ('ethereum', '%s', %d)`, date, 2200+d),
			fmt.Sprintf(`INSERT INTO oil_prices VALUES ('%s', %d)`, date, 70+d),
			fmt.Sprintf(`INSERT INTO stock_prices VALUES ('^GSPC', '%s', %v, %v, %v, 1000)`, date, gspc, gspc+10, gspc-10),
			fmt.Sprintf(`INSERT INTO stock_prices VALUES ('^NSEI', '%s', %d, %d, %d, 500)`, date, 21000+d, 21050+d, 20950+d),
		)
	}
	stmts = append(stmts, extra...)
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return path
}

func open(t *testing.T, extra ...string) ports.StoragePort {
	t.Helper()
	store, err := New(config.DatabaseConfig{Driver: DriverName, Path: seed(t, extra...)})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return store
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "nope.db")})
	if err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestQueryFrame_MarketOverview(t *testing.T) {
	store := open(t)
	f, err := store.QueryFrame(context.Background(), catalog.MarketOverviewQuery)
	if err != nil {
		t.Fatalf("QueryFrame failed: %v", err)
	}
	if f.Len() != 10 {
		t.Fatalf("expected 10 joined rows, got %d", f.Len())
	}
	want := []string{catalog.ColumnEntryDate, catalog.ColumnBTC, catalog.ColumnOil, catalog.ColumnSP500, catalog.ColumnNifty}
	for i, name := range f.Names() {
		if name != want[i] {
			t.Errorf("column %d: got %q, want %q", i, name, want[i])
		}
	}
	if f.Columns[0].Kind != models.KindDate {
		t.Errorf("Entry_Date should be a date column, got %s", f.Columns[0].Kind)
	}
	sp, _ := f.Column(catalog.ColumnSP500)
	if sp.Kind != models.KindNumber || sp.Numbers[5].Float64 != 0 {
		t.Errorf("store must return the raw zero close, got %v", sp.Numbers[5])
	}
	dates := f.Dates()
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Fatalf("dates not ascending at %d: %v", i, dates)
		}
	}
}

func TestPriceSeries(t *testing.T) {
	store := open(t)
	s, err := store.PriceSeries(context.Background(), "ethereum")
	if err != nil {
		t.Fatalf("PriceSeries failed: %v", err)
	}
	if s.AssetID != "ethereum" || s.Len() != 10 {
		t.Fatalf("unexpected series: %s with %d points", s.AssetID, s.Len())
	}
	if s.Points[0].Price != 2201 || s.Points[0].Date.Day() != 1 {
		t.Errorf("unexpected first point: %+v", s.Points[0])
	}

	empty, err := store.PriceSeries(context.Background(), "solana")
	if err != nil {
		t.Fatalf("PriceSeries failed: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("expected no solana rows, got %d", empty.Len())
	}
}

func TestQueryFrame_EveryCatalogQueryRuns(t *testing.T) {
	store := open(t)
	c := catalog.New(catalog.SQLite)
	for _, cat := range c.Categories() {
		keys, _ := c.Queries(cat)
		for _, key := range keys {
			q, _ := c.Resolve(cat, key)
			if _, err := store.QueryFrame(context.Background(), q); err != nil {
				t.Errorf("%s / %s: %v", cat, key, err)
			}
		}
	}
}

func TestQueryFrame_OilPeak(t *testing.T) {
	store := open(t)
	q, _ := catalog.New(catalog.SQLite).Resolve(catalog.OilAnalysis, "Q13: Highest Oil Peak")
	f, err := store.QueryFrame(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	col, ok := f.Column("Peak_Oil_INR")
	if !ok || f.Len() != 1 || col.Numbers[0].Float64 != 80 {
		t.Errorf("unexpected result: %+v", f)
	}
}

func TestQueryFrame_TextColumns(t *testing.T) {
	store := open(t)
	q, _ := catalog.New(catalog.SQLite).Resolve(catalog.CryptoAttributes, "Q1: Top 3 by Market Cap")
	f, err := store.QueryFrame(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	name, _ := f.Column("name")
	if name.Kind != models.KindText || name.Texts[0].String != "Bitcoin" {
		t.Errorf("unexpected name column: %+v", name)
	}
}

func TestQueryFrame_RefusesWrites(t *testing.T) {
	store := open(t)
	_, err := store.QueryFrame(context.Background(), "INSERT INTO oil_prices VALUES ('2024-02-01', 1) RETURNING price_usd")
	if err == nil {
		t.Error("expected write to be refused")
	}
}

func TestQueryFrame_BadSQL(t *testing.T) {
	store := open(t)
	_, err := store.QueryFrame(context.Background(), "SELECT nope FROM nowhere")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ports.ErrStoreUnavailable) {
		t.Error("a bad statement is not an availability failure")
	}
}

// march2025 adds one day where two coins, three indices and a $95 oil price
// share a date.
var march2025 = []string{
	`INSERT INTO crypto_prices VALUES ('bitcoin', '2025-03-01', 90000), ('ethereum', '2025-03-01', 3000)`,
	`INSERT INTO oil_prices VALUES ('2025-03-01', 95)`,
	`INSERT INTO stock_prices VALUES
		('^NSEI', '2025-03-01', 22000, 22100, 21900, 500),
		('^GSPC', '2025-03-01', 5000, 5050, 4950, 1000),
		('^IXIC', '2025-03-01', 18000, 18100, 17900, 2000)`,
}

func runCatalog(t *testing.T, store ports.StoragePort, key string) *models.Frame {
	t.Helper()
	q, err := catalog.New(catalog.SQLite).Resolve(catalog.JoinQueries, key)
	if err != nil {
		t.Fatal(err)
	}
	f, err := store.QueryFrame(context.Background(), q)
	if err != nil {
		t.Fatalf("%s: %v", key, err)
	}
	return f
}

func TestJoinQueries_Filters(t *testing.T) {
	store := open(t, march2025...)

	// averaged over every coin on the day, not bitcoin alone
	f := runCatalog(t, store, "Q25: BTC vs Oil (2025)")
	btc, ok := f.Column("BTC_INR")
	if !ok || f.Len() != 1 || btc.Numbers[0].Float64 != 46500 {
		t.Errorf("Q25: unexpected result %+v", f)
	}
	oil, _ := f.Column("Oil_INR")
	if oil.Numbers[0].Float64 != 95 {
		t.Errorf("Q25: oil average %v, want 95", oil.Numbers[0].Float64)
	}

	// every index row on a $95 oil day
	if f := runCatalog(t, store, "Q28: Oil Influence on Nifty"); f.Len() != 3 {
		t.Errorf("Q28: expected 3 rows, got %d", f.Len())
	}

	// every coin on a NASDAQ day
	f = runCatalog(t, store, "Q29: BTC vs NASDAQ Correlation")
	if f.Len() != 2 {
		t.Errorf("Q29: expected 2 rows, got %d", f.Len())
	}
	if _, ok := f.Column("NASDAQ_Price_INR"); !ok {
		t.Errorf("Q29: alias case lost, got %v", f.Names())
	}
}
