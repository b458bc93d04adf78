package models

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"
)

// ColumnKind identifies the cell type held by a Column
type ColumnKind string

const (
	KindNumber ColumnKind = "number"
	KindText   ColumnKind = "text"
	KindDate   ColumnKind = "date"
)

// Column is a named, typed column of nullable cells. Exactly one of
// Numbers, Texts or Dates is used, selected by Kind.
type Column struct {
	Name    string        `json:"name"`
	Kind    ColumnKind    `json:"kind"`
	Numbers []null.Float  `json:"numbers,omitempty"`
	Texts   []null.String `json:"texts,omitempty"`
	Dates   []null.Time   `json:"dates,omitempty"`
}

// NewNumberColumn builds a numeric column.
func NewNumberColumn(name string, cells ...null.Float) Column {
	return Column{Name: name, Kind: KindNumber, Numbers: cells}
}

// NewTextColumn builds a text column.
func NewTextColumn(name string, cells ...null.String) Column {
	return Column{Name: name, Kind: KindText, Texts: cells}
}

// NewDateColumn builds a date column.
func NewDateColumn(name string, cells ...null.Time) Column {
	return Column{Name: name, Kind: KindDate, Dates: cells}
}

// Len returns the number of cells in the column
func (c Column) Len() int {
	switch c.Kind {
	case KindNumber:
		return len(c.Numbers)
	case KindDate:
		return len(c.Dates)
	default:
		return len(c.Texts)
	}
}

// Valid reports whether the cell at row i holds a value.
func (c Column) Valid(i int) bool {
	switch c.Kind {
	case KindNumber:
		return c.Numbers[i].Valid
	case KindDate:
		return c.Dates[i].Valid
	default:
		return c.Texts[i].Valid
	}
}

// String formats the cell at row i for display. Missing cells render empty.
func (c Column) String(i int) string {
	if !c.Valid(i) {
		return ""
	}
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("%.2f", c.Numbers[i].Float64)
	case KindDate:
		return c.Dates[i].Time.Format(DateLayout)
	default:
		return c.Texts[i].String
	}
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case KindNumber:
		out.Numbers = append(make([]null.Float, 0, len(c.Numbers)), c.Numbers...)
	case KindDate:
		out.Dates = append(make([]null.Time, 0, len(c.Dates)), c.Dates...)
	default:
		out.Texts = append(make([]null.String, 0, len(c.Texts)), c.Texts...)
	}
	return out
}

// Frame is a column-oriented result table. A joined frame's date axis is
// its first date column.
type Frame struct {
	Columns []Column `json:"columns"`
}

// NewFrame builds a frame and checks that every column has the same length.
func NewFrame(columns ...Column) (*Frame, error) {
	for i := 1; i < len(columns); i++ {
		if columns[i].Len() != columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d",
				columns[i].Name, columns[i].Len(), columns[0].Len())
		}
	}
	return &Frame{Columns: columns}, nil
}

// Len returns the row count
func (f *Frame) Len() int {
	if f == nil || len(f.Columns) == 0 {
		return 0
	}
	return f.Columns[0].Len()
}

// Width returns the column count
func (f *Frame) Width() int {
	if f == nil {
		return 0
	}
	return len(f.Columns)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, 0, f.Width())
	for _, c := range f.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// DateIndex returns the position of the frame's date axis.
func (f *Frame) DateIndex() (int, bool) {
	for i, c := range f.Columns {
		if c.Kind == KindDate {
			return i, true
		}
	}
	return -1, false
}

// Dates returns the date axis values, or nil when the frame has none.
func (f *Frame) Dates() []time.Time {
	idx, ok := f.DateIndex()
	if !ok {
		return nil
	}
	col := f.Columns[idx]
	out := make([]time.Time, len(col.Dates))
	for i, d := range col.Dates {
		out[i] = d.Time
	}
	return out
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{Columns: make([]Column, 0, f.Width())}
	for _, c := range f.Columns {
		out.Columns = append(out.Columns, c.clone())
	}
	return out
}

// Filter returns a new frame holding the rows for which keep returns true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	out := &Frame{Columns: make([]Column, 0, f.Width())}
	for _, c := range f.Columns {
		out.Columns = append(out.Columns, Column{Name: c.Name, Kind: c.Kind})
	}
	for row := 0; row < f.Len(); row++ {
		if !keep(row) {
			continue
		}
		for i, c := range f.Columns {
			switch c.Kind {
			case KindNumber:
				out.Columns[i].Numbers = append(out.Columns[i].Numbers, c.Numbers[row])
			case KindDate:
				out.Columns[i].Dates = append(out.Columns[i].Dates, c.Dates[row])
			default:
				out.Columns[i].Texts = append(out.Columns[i].Texts, c.Texts[row])
			}
		}
	}
	return out
}

// InRange keeps the rows whose date axis value falls inside r. A frame
// without a date axis is returned unchanged.
func (f *Frame) InRange(r DateRange) *Frame {
	idx, ok := f.DateIndex()
	if !ok {
		return f
	}
	dates := f.Columns[idx].Dates
	return f.Filter(func(row int) bool {
		return dates[row].Valid && r.Contains(dates[row].Time)
	})
}
