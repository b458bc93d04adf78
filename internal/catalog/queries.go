package catalog

import "fmt"

const (
	CryptoAttributes = "1. Crypto Attributes"
	DailyTrends      = "2. Daily Trends"
	OilAnalysis      = "3. Oil Analysis"
	StockIndices     = "4. Stock Indices"
	JoinQueries      = "5. Join Queries"
)

type group struct {
	name    string
	queries [][2]string
}

// definitions double-quotes every alias so Postgres keeps its case.
func definitions(d Dialect) []group {
	return []group{
		{CryptoAttributes, [][2]string{
			{"Q1: Top 3 by Market Cap", `SELECT name, symbol, market_cap AS "Market_Cap_INR" FROM cryptocurrencies ORDER BY market_cap DESC LIMIT 3`},
			{"Q2: Supply > 90%", `SELECT name, symbol FROM cryptocurrencies WHERE (circulating_supply / total_supply) > 0.9`},
			{"Q3: Within 10% of ATH", `SELECT name, current_price AS "Price_INR" FROM cryptocurrencies WHERE current_price >= (ath * 0.9)`},
			{"Q4: Avg Rank (Vol > $1B)", `SELECT AVG(market_cap_rank) AS "Avg_Rank" FROM cryptocurrencies WHERE total_volume > 1000000000`},
			{"Q5: High Value Assets", `SELECT name, current_price AS "Price_INR" FROM cryptocurrencies WHERE current_price > 1000`},
			{"Q6: Most Recent Entry", `SELECT name, symbol FROM cryptocurrencies ORDER BY id DESC LIMIT 1`},
		}},
		{DailyTrends, [][2]string{
			{"Q7: Highest BTC (INR)", `SELECT MAX(price_usd) AS "Peak_Price_INR" FROM crypto_prices WHERE coin_id='bitcoin'`},
			{"Q8: ETH Average (INR)", `SELECT AVG(price_usd) AS "Avg_Price_INR" FROM crypto_prices WHERE coin_id='ethereum'`},
			{"Q9: BTC Jan 2025 Trend", `SELECT date, price_usd AS "Price_INR" FROM crypto_prices WHERE coin_id='bitcoin' AND date >= '2025-01-01' AND date < '2025-02-01' ORDER BY date`},
			{"Q10: BTC % Price Change", `SELECT (MAX(price_usd)-MIN(price_usd))/MIN(price_usd)*100 AS "Pct_Change" FROM crypto_prices WHERE coin_id='bitcoin'`},
			{"Q11: Price Extremes (INR)", `SELECT coin_id, MIN(price_usd) AS "Min_Price_INR", MAX(price_usd) AS "Max_Price_INR" FROM crypto_prices GROUP BY coin_id`},
			{"Q12: Lowest Historical BTC", `SELECT MIN(price_usd) AS "Hist_Low_INR" FROM crypto_prices WHERE coin_id='bitcoin'`},
		}},
		{OilAnalysis, [][2]string{
			{"Q13: Highest Oil Peak", `SELECT MAX(price_usd) AS "Peak_Oil_INR" FROM oil_prices`},
			{"Q14: Avg Oil Yearly", fmt.Sprintf(`SELECT %s AS "Year", AVG(price_usd) AS "Avg_Oil_INR" FROM oil_prices GROUP BY 1 ORDER BY 1`, d.Year("date"))},
			{"Q15: 2020 Crash Trend", `SELECT date, price_usd AS "Price_INR" FROM oil_prices WHERE date BETWEEN '2020-03-01' AND '2020-04-30' ORDER BY date`},
			{"Q16: Yearly Price Range", fmt.Sprintf(`SELECT %s AS "Year", (MAX(price_usd)-MIN(price_usd)) AS "Range_INR" FROM oil_prices GROUP BY 1 ORDER BY 1`, d.Year("date"))},
			{"Q17: Days Above $80", `SELECT COUNT(*) AS "High_Price_Days" FROM oil_prices WHERE price_usd > 80`},
			{"Q18: Q1 2025 Average", `SELECT AVG(price_usd) AS "Q1_Avg_INR" FROM oil_prices WHERE date BETWEEN '2025-01-01' AND '2025-03-31'`},
		}},
		{StockIndices, [][2]string{
			{"Q19: NASDAQ Peak (INR)", `SELECT MAX(close) AS "Peak_INR" FROM stock_prices WHERE ticker='^IXIC'`},
			{"Q20: Top 5 Volatility (S&P)", `SELECT date, (high-low) AS "Swing_INR" FROM stock_prices WHERE ticker='^GSPC' ORDER BY "Swing_INR" DESC LIMIT 5`},
			{"Q21: Nifty Avg Vol 2024", fmt.Sprintf(`SELECT AVG(volume) AS "Avg_Vol" FROM stock_prices WHERE ticker='^NSEI' AND %s=2024`, d.Year("date"))},
			{"Q22: Monthly Index Price", fmt.Sprintf(`SELECT ticker, %s AS "Month", AVG(close) AS "Avg_Close_INR" FROM stock_prices GROUP BY 1, 2 ORDER BY 1, 2`, d.Month("date"))},
			{"Q23: S&P Row Count", `SELECT COUNT(*) AS "Row_Count" FROM stock_prices WHERE ticker='^GSPC'`},
			{"Q24: Index Historical Lows", `SELECT ticker, MIN(low) AS "Low_Price_INR" FROM stock_prices GROUP BY ticker`},
		}},
		{JoinQueries, [][2]string{
			{"Q25: BTC vs Oil (2025)", fmt.Sprintf(`SELECT AVG(c.price_usd) AS "BTC_INR", AVG(o.price_usd) AS "Oil_INR" FROM crypto_prices c JOIN oil_prices o ON c.date=o.date WHERE %s=2025`, d.Year("c.date"))},
			{"Q26: BTC vs Nifty (Synced)", `SELECT c.date, c.price_usd AS "BTC_INR", s.close AS "Nifty_INR" FROM crypto_prices c JOIN stock_prices s ON c.date=s.date WHERE c.coin_id='bitcoin' AND s.ticker='^NSEI' ORDER BY c.date DESC LIMIT 10`},
			{"Q27: Multi-Join Snapshot", `SELECT c.date AS "Entry_Date", c.price_usd AS "BTC_Price_INR", o.price_usd AS "Oil_Price_INR", s.close AS "Stock_Price_INR" FROM crypto_prices c JOIN oil_prices o ON c.date=o.date JOIN stock_prices s ON s.date=c.date LIMIT 10`},
			{"Q28: Oil Influence on Nifty", `SELECT o.date, o.price_usd AS "Oil_Price_INR", s.close AS "Nifty_Price_INR" FROM oil_prices o JOIN stock_prices s ON o.date=s.date WHERE o.price_usd > 90 LIMIT 5`},
			{"Q29: BTC vs NASDAQ Correlation", `SELECT c.date, c.price_usd AS "BTC_Price_INR", s.close AS "NASDAQ_Price_INR" FROM crypto_prices c JOIN stock_prices s ON c.date=s.date WHERE s.ticker='^IXIC' LIMIT 5`},
			{"Q30: Global Market Extremes", `SELECT MIN(c.price_usd) AS "Min_BTC_INR", MAX(s.close) AS "Max_Stock_INR" FROM crypto_prices c JOIN stock_prices s ON c.date=s.date`},
		}},
	}
}
