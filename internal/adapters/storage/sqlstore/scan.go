package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"crossmarket/internal/domain/models"
)

var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02T15:04:05",
}

// readFrame drains rows into a frame. Column kinds are inferred from the
// values: all-numeric columns are numbers, all-date columns are dates,
// anything else is text. NULLs stay missing.
func readFrame(rows *sql.Rows) (*models.Frame, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	raw := make([][]any, len(names))
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		for i, v := range vals {
			raw[i] = append(raw[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	frame := &models.Frame{Columns: make([]models.Column, 0, len(names))}
	for i, name := range names {
		frame.Columns = append(frame.Columns, buildColumn(name, raw[i]))
	}
	return frame, nil
}

func buildColumn(name string, vals []any) models.Column {
	switch kindOf(vals) {
	case models.KindNumber:
		cells := make([]null.Float, len(vals))
		for i, v := range vals {
			if f, ok := toFloat(v); ok {
				cells[i] = null.FloatFrom(f)
			}
		}
		return models.NewNumberColumn(name, cells...)
	case models.KindDate:
		cells := make([]null.Time, len(vals))
		for i, v := range vals {
			if t, ok := toTime(v); ok {
				cells[i] = null.TimeFrom(t)
			}
		}
		return models.NewDateColumn(name, cells...)
	default:
		cells := make([]null.String, len(vals))
		for i, v := range vals {
			if v != nil {
				cells[i] = null.StringFrom(toText(v))
			}
		}
		return models.NewTextColumn(name, cells...)
	}
}

func kindOf(vals []any) models.ColumnKind {
	numeric, dated := true, true
	for _, v := range vals {
		if v == nil {
			continue
		}
		if _, ok := toFloat(v); !ok {
			numeric = false
		}
		if _, ok := toTime(v); !ok {
			dated = false
		}
		if !numeric && !dated {
			return models.KindText
		}
	}
	if numeric {
		return models.KindNumber
	}
	return models.KindDate
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int:
		return float64(x), true
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case []byte:
		return parseTime(string(x))
	case string:
		return parseTime(x)
	}
	return time.Time{}, false
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(models.DateLayout)
	}
	return fmt.Sprint(v)
}
