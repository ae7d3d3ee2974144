// Package aggregate groups rows by categorical keys and reduces them.
package aggregate

import (
	"sort"

	"github.com/evcraddock/nycviz/internal/binning"
)

// Count is one group and its reduced value.
type Count struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// CountBy counts rows per key. Rows with an empty key are skipped. When
// order is given, the result follows it and includes zero counts for
// absent levels; keys not in order are appended lexically. Otherwise the
// result is sorted by key.
func CountBy(n int, key func(i int) string, order []string) []Count {
	return SumBy(n, key, func(int) float64 { return 1 }, order)
}

// SumBy sums value(i) per key with the same ordering rules as CountBy.
func SumBy(n int, key func(i int) string, value func(i int) float64, order []string) []Count {
	sums := make(map[string]float64)
	for i := 0; i < n; i++ {
		k := key(i)
		if k == "" {
			continue
		}
		sums[k] += value(i)
	}
	return ordered(sums, order)
}

func ordered(sums map[string]float64, order []string) []Count {
	out := make([]Count, 0, len(sums)+len(order))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		seen[k] = true
		out = append(out, Count{Key: k, Value: sums[k]})
	}

	var rest []string
	for k := range sums {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, Count{Key: k, Value: sums[k]})
	}
	return out
}

// Grid is a dense 2-D count matrix. Cells[row][col] counts rows whose y
// falls in row bin and x in col bin.
type Grid struct {
	XEdges []float64   `json:"x_edges"`
	YEdges []float64   `json:"y_edges"`
	Cells  [][]float64 `json:"cells"`
}

// Histogram2D bins (x, y) pairs on the given edges. Pairs outside either
// set of edges are ignored; empty cells are zero.
func Histogram2D(xs, ys []float64, xEdges, yEdges []float64) (*Grid, error) {
	xb, err := binning.NewBins(xEdges, nil)
	if err != nil {
		return nil, err
	}
	yb, err := binning.NewBins(yEdges, nil)
	if err != nil {
		return nil, err
	}

	cells := make([][]float64, yb.Len())
	for i := range cells {
		cells[i] = make([]float64, xb.Len())
	}

	for i := range xs {
		if i >= len(ys) {
			break
		}
		c, r := xb.Index(xs[i]), yb.Index(ys[i])
		if c < 0 || r < 0 {
			continue
		}
		cells[r][c]++
	}

	return &Grid{XEdges: xEdges, YEdges: yEdges, Cells: cells}, nil
}

// CrossTab counts (row, col) label pairs into a matrix ordered by the
// given levels. Pairs with a label outside the levels are ignored.
func CrossTab(rows, cols []string, rowLevels, colLevels []string) [][]int {
	ri := index(rowLevels)
	ci := index(colLevels)

	out := make([][]int, len(rowLevels))
	for i := range out {
		out[i] = make([]int, len(colLevels))
	}
	for i := range rows {
		if i >= len(cols) {
			break
		}
		r, okR := ri[rows[i]]
		c, okC := ci[cols[i]]
		if okR && okC {
			out[r][c]++
		}
	}
	return out
}

func index(levels []string) map[string]int {
	m := make(map[string]int, len(levels))
	for i, l := range levels {
		m[l] = i
	}
	return m
}
