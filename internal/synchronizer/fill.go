package synchronizer

import (
	"sort"

	"github.com/guregu/null/v6"

	"crossmarket/internal/domain/models"
)

// Synchronizer densifies joined frames by forward-filling each column.
type Synchronizer struct {
	// ZeroIsMissing treats numeric zeros as missing before filling.
	// No observed price in this domain is zero.
	ZeroIsMissing bool
}

// Default is the policy used by the dashboard.
var Default = Synchronizer{ZeroIsMissing: true}

// Fill applies the Default policy.
func Fill(f *models.Frame) *models.Frame {
	return Default.Fill(f)
}

// Fill returns a dense copy of f. Each column is forward-filled on its own,
// visiting rows in ascending date order; cells with no earlier value become
// the zero value of their kind. Row and column order are kept.
//
// The date axis is filled first, in row order, so the visiting order is the
// same on every pass and Fill(Fill(f)) equals Fill(f).
func (s Synchronizer) Fill(f *models.Frame) *models.Frame {
	if f == nil || f.Len() == 0 {
		return f
	}

	out := f.Clone()

	axis, hasAxis := out.DateIndex()
	if hasAxis {
		fillDates(out.Columns[axis].Dates, rowOrder(out.Len()))
	}
	order := fillOrder(out)

	for i := range out.Columns {
		if hasAxis && i == axis {
			continue
		}
		col := &out.Columns[i]
		switch col.Kind {
		case models.KindNumber:
			s.fillNumbers(col.Numbers, order)
		case models.KindDate:
			fillDates(col.Dates, order)
		default:
			fillTexts(col.Texts, order)
		}
	}

	return out
}

func (s Synchronizer) fillNumbers(cells []null.Float, order []int) {
	var last null.Float
	for _, row := range order {
		cell := cells[row]
		if s.ZeroIsMissing && cell.Valid && cell.Float64 == 0 {
			cell = null.Float{}
		}
		if cell.Valid {
			last = cell
			cells[row] = cell
			continue
		}
		cells[row] = null.FloatFrom(last.ValueOrZero())
	}
}

func fillTexts(cells []null.String, order []int) {
	var last null.String
	for _, row := range order {
		if cells[row].Valid {
			last = cells[row]
			continue
		}
		cells[row] = null.StringFrom(last.ValueOrZero())
	}
}

func fillDates(cells []null.Time, order []int) {
	var last null.Time
	for _, row := range order {
		if cells[row].Valid {
			last = cells[row]
			continue
		}
		cells[row] = null.TimeFrom(last.ValueOrZero())
	}
}

func rowOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// fillOrder returns row indices in ascending date order when every row has
// a date, and in row order otherwise. Ties keep row order.
func fillOrder(f *models.Frame) []int {
	order := rowOrder(f.Len())

	idx, ok := f.DateIndex()
	if !ok {
		return order
	}
	dates := f.Columns[idx].Dates
	for _, d := range dates {
		if !d.Valid {
			return order
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return dates[order[a]].Time.Before(dates[order[b]].Time)
	})
	return order
}

// IsDense reports whether every cell of f holds a value
func IsDense(f *models.Frame) bool {
	for _, col := range f.Columns {
		for row := 0; row < col.Len(); row++ {
			if !col.Valid(row) {
				return false
			}
		}
	}
	return true
}
