package analytics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"crossmarket/internal/domain/models"
)

// ErrNotEnoughRows is returned when fewer than two complete rows exist.
var ErrNotEnoughRows = errors.New("at least two complete rows are required")

// Matrix is a symmetric Pearson correlation matrix
type Matrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
	Rows   int         `json:"rows"`
}

// At returns the coefficient between two labels.
func (m *Matrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

func (m *Matrix) index(label string) int {
	for i, l := range m.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Correlate computes pairwise Pearson coefficients over the numeric columns
// of f, using only rows where every numeric column has a value. Pairs with a
// constant column yield NaN, which is reported as zero.
func Correlate(f *models.Frame) (*Matrix, error) {
	var cols []models.Column
	for _, c := range f.Columns {
		if c.Kind == models.KindNumber {
			cols = append(cols, c)
		}
	}

	data := make([][]float64, len(cols))
	for row := 0; row < f.Len(); row++ {
		complete := true
		for _, c := range cols {
			if !c.Numbers[row].Valid {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for i, c := range cols {
			data[i] = append(data[i], c.Numbers[row].Float64)
		}
	}

	if len(cols) == 0 || len(data[0]) < 2 {
		return nil, ErrNotEnoughRows
	}

	m := &Matrix{
		Labels: make([]string, len(cols)),
		Values: make([][]float64, len(cols)),
		Rows:   len(data[0]),
	}
	for i, c := range cols {
		m.Labels[i] = c.Name
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		m.Values[i][i] = 1
		for j := i + 1; j < len(cols); j++ {
			r := stat.Correlation(data[i], data[j], nil)
			if math.IsNaN(r) {
				r = 0
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}
