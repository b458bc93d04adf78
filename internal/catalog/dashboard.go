package catalog

// Overview asset columns, in display order.
const (
	ColumnEntryDate = "Entry_Date"
	ColumnBTC       = "BTC_INR"
	ColumnOil       = "Oil_INR"
	ColumnSP500     = "SP500_INR"
	ColumnNifty     = "NIFTY_INR"
	ColumnStock     = "Stock_INR"
)

// OverviewAssets lists the asset columns the overview can chart.
var OverviewAssets = []string{ColumnBTC, ColumnOil, ColumnSP500, ColumnNifty}

// DetailAssets lists the coin ids available in the single-asset view.
var DetailAssets = []string{"bitcoin", "ethereum", "tether", "solana", "binancecoin"}

// Aliases are quoted so both stores keep their case.

// MarketOverviewQuery joins bitcoin, oil, S&P 500 and NIFTY 50 on date.
const MarketOverviewQuery = `SELECT c.date AS "Entry_Date",
       c.price_usd AS "BTC_INR",
       o.price_usd AS "Oil_INR",
       s.close AS "SP500_INR",
       n.close AS "NIFTY_INR"
FROM crypto_prices c
JOIN oil_prices o ON c.date = o.date
JOIN stock_prices s ON c.date = s.date AND s.ticker = '^GSPC'
JOIN stock_prices n ON c.date = n.date AND n.ticker = '^NSEI'
WHERE c.coin_id = 'bitcoin'
ORDER BY c.date ASC`

// CorrelationQuery joins bitcoin, oil and every stock index on date.
const CorrelationQuery = `SELECT c.price_usd AS "BTC_INR",
       o.price_usd AS "Oil_INR",
       s.close AS "Stock_INR"
FROM crypto_prices c
JOIN oil_prices o ON c.date = o.date
JOIN stock_prices s ON s.date = c.date
WHERE c.coin_id = 'bitcoin'`

// AssetSeriesQuery returns one coin's history. The placeholder is supplied
// by the store so the same text serves $1 and ? drivers.
func AssetSeriesQuery(placeholder string) string {
	return "SELECT date, price_usd FROM crypto_prices WHERE coin_id = " + placeholder + " ORDER BY date ASC"
}

// IsOverviewAsset reports whether label is one of OverviewAssets.
func IsOverviewAsset(label string) bool {
	return contains(OverviewAssets, label)
}

// IsDetailAsset reports whether id is one of DetailAssets.
func IsDetailAsset(id string) bool {
	return contains(DetailAssets, id)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
