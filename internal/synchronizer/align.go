package synchronizer

import (
	"sort"
	"time"

	"github.com/guregu/null/v6"

	"crossmarket/internal/domain/models"
)

// DateColumn is the name of the date axis produced by Align.
const DateColumn = "date"

// Align outer-joins series on calendar date. The result has one row per
// distinct date present in any series, ascending, and one numeric column
// per series named after its asset. Cells a series does not cover are null.
func Align(series ...models.PriceSeries) *models.Frame {
	seen := make(map[time.Time]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			seen[models.CalendarDay(p.Date)] = struct{}{}
		}
	}

	axis := make([]time.Time, 0, len(seen))
	for d := range seen {
		axis = append(axis, d)
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })

	rowOf := make(map[time.Time]int, len(axis))
	dates := make([]null.Time, len(axis))
	for i, d := range axis {
		rowOf[d] = i
		dates[i] = null.TimeFrom(d)
	}

	columns := make([]models.Column, 0, len(series)+1)
	columns = append(columns, models.NewDateColumn(DateColumn, dates...))
	for _, s := range series {
		cells := make([]null.Float, len(axis))
		for _, p := range s.Points {
			cells[rowOf[models.CalendarDay(p.Date)]] = null.FloatFrom(p.Price)
		}
		columns = append(columns, models.NewNumberColumn(s.AssetID, cells...))
	}

	return &models.Frame{Columns: columns}
}
