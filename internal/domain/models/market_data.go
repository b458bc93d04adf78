package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used on the wire and in the store.
const DateLayout = "2006-01-02"

// PricePoint is one daily observation of an asset price
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceSeries is the ordered daily history of one asset
type PriceSeries struct {
	AssetID string       `json:"asset_id"`
	Points  []PricePoint `json:"points"`
}

// Len returns the number of observations in the series
func (s *PriceSeries) Len() int {
	return len(s.Points)
}

// DateRange is an inclusive range of calendar dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses two YYYY-MM-DD dates into a range.
func NewDateRange(start, end string) (*DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return &DateRange{Start: s, End: e}, nil
}

// Contains reports whether t falls on a calendar day within the range.
// Only the year, month and day of t are compared.
func (r DateRange) Contains(t time.Time) bool {
	d := CalendarDay(t)
	return !d.Before(CalendarDay(r.Start)) && !d.After(CalendarDay(r.End))
}

// CalendarDay truncates t to midnight UTC of the same calendar day.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// QueryRun records a single execution of a catalog query
type QueryRun struct {
	ID       string        `json:"id"`
	Category string        `json:"category"`
	Query    string        `json:"query"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration"`
	RanAt    time.Time     `json:"ran_at"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
}
