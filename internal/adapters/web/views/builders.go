package views

import (
	"strings"

	"crossmarket/internal/analytics"
	"crossmarket/internal/domain/models"
)

// DarkTemplate is the chart theme used across the dashboard.
const DarkTemplate = "plotly_dark"

// Default color palette for chart series.
var defaultColors = []string{
	"#00FFCC", "#F59E0B", "#4F46E5", "#EF4444", "#10B981",
	"#EC4899", "#06B6D4", "#84CC16",
}

// BuildLineChart plots the named numeric columns of f against its date axis.
// Returns nil when f has no date axis or no rows.
func BuildLineChart(title, yAxis string, f *models.Frame, columns []string) *ChartConfig {
	idx, ok := f.DateIndex()
	if !ok || f.Len() == 0 {
		return nil
	}
	dates := f.Columns[idx]

	config := &ChartConfig{
		ChartType:  "line",
		Title:      title,
		XAxis:      dates.Name,
		YAxis:      yAxis,
		Template:   DarkTemplate,
		ShowLegend: true,
		ShowGrid:   true,
	}

	for i, name := range columns {
		col, ok := f.Column(name)
		if !ok || col.Kind != models.KindNumber {
			continue
		}
		series := ChartSeries{
			Name:  name,
			Data:  make([]ChartPoint, 0, f.Len()),
			Color: defaultColors[i%len(defaultColors)],
		}
		for row := 0; row < f.Len(); row++ {
			if !col.Numbers[row].Valid {
				continue
			}
			series.Data = append(series.Data, ChartPoint{
				Label: dates.String(row),
				Value: col.Numbers[row].Float64,
			})
		}
		config.Series = append(config.Series, series)
	}

	return config
}

// BuildAreaChart plots a single price series. Returns nil for an empty series.
func BuildAreaChart(title string, s *models.PriceSeries) *ChartConfig {
	if s == nil || s.Len() == 0 {
		return nil
	}

	data := make([]ChartPoint, 0, s.Len())
	for _, p := range s.Points {
		data = append(data, ChartPoint{Label: p.Date.Format(models.DateLayout), Value: p.Price})
	}

	return &ChartConfig{
		ChartType: "area",
		Title:     title,
		XAxis:     "date",
		YAxis:     "Price in INR",
		Template:  DarkTemplate,
		Series:    []ChartSeries{{Name: s.AssetID, Data: data, Color: defaultColors[0]}},
		ShowGrid:  true,
	}
}

// BuildTable renders every cell of f as text.
func BuildTable(title string, f *models.Frame) *TableData {
	table := &TableData{
		Title:   title,
		Columns: make([]Column, 0, f.Width()),
		Rows:    make([][]string, 0, f.Len()),
	}

	for _, c := range f.Columns {
		col := Column{Key: c.Name, Label: LabelFor(c.Name), Type: string(c.Kind), Align: "left"}
		if c.Kind == models.KindNumber {
			col.Align = "right"
		}
		table.Columns = append(table.Columns, col)
	}

	for row := 0; row < f.Len(); row++ {
		cells := make([]string, 0, f.Width())
		for _, c := range f.Columns {
			cells = append(cells, c.String(row))
		}
		table.Rows = append(table.Rows, cells)
	}

	return table
}

// BuildHeatmap renders a correlation matrix. Returns nil for a nil matrix.
func BuildHeatmap(title string, m *analytics.Matrix) *Heatmap {
	if m == nil {
		return nil
	}
	return &Heatmap{
		Title:    title,
		Labels:   m.Labels,
		Values:   m.Values,
		Template: DarkTemplate,
		TextAuto: true,
	}
}

// LabelFor turns a column name like "BTC_Price_INR" into "BTC Price INR".
func LabelFor(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
