package views

// ============================================================================
// VIEW TYPES: render-ready payloads for the dashboard frontend
// ============================================================================
// The frontend draws charts and tables from these shapes; nothing here
// knows about the store or the synchronizer.
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "line", "area", "heatmap"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Template   string        `json:"template"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "date"
	Align string `json:"align"` // "left", "right"
}

// Heatmap is a labelled square matrix, rendered with values printed in cells.
type Heatmap struct {
	Title    string      `json:"title"`
	Labels   []string    `json:"labels"`
	Values   [][]float64 `json:"values"`
	Template string      `json:"template"`
	TextAuto bool        `json:"textAuto"`
}
