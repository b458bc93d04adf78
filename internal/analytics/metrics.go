package analytics

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"crossmarket/internal/domain/models"
)

// Metric is a single summary card
type Metric struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	Available bool    `json:"available"`
}

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

// Average returns the mean of the valid cells of a numeric column.
// Sums are accumulated in decimal so long series round the same way
// regardless of row order.
func Average(col models.Column) (float64, bool) {
	if col.Kind != models.KindNumber {
		return 0, false
	}
	sum := decimal.Zero
	n := int64(0)
	for _, c := range col.Numbers {
		if !c.Valid {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(c.Float64))
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum.Div(decimal.NewFromInt(n)).Round(2).InexactFloat64(), true
}

// Averages builds one metric card per named column. Columns missing from
// the frame, or with no values, are reported as unavailable.
func Averages(f *models.Frame, columns []string, labels map[string]string) []Metric {
	out := make([]Metric, 0, len(columns))
	for _, name := range columns {
		label := labels[name]
		if label == "" {
			label = name
		}
		m := Metric{Label: label, Display: "n/a"}
		if col, ok := f.Column(name); ok {
			if avg, ok := Average(col); ok {
				m.Value = avg
				m.Display = FormatCurrency(avg)
				m.Available = true
			}
		}
		out = append(out, m)
	}
	return out
}

// FormatCurrency renders an amount with thousands separators and two decimals.
func FormatCurrency(v float64) string {
	return CurrencySymbol + humanize.FormatFloat("#,###.##", v)
}
