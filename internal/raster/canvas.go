// Package raster aggregates large point sets onto a pixel grid and shades
// the result into images.
package raster

import (
	"fmt"
	"math"
)

// Range is a closed data interval mapped onto one canvas axis.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Canvas maps a data extent onto a Width x Height pixel grid. Y grows
// upward in data space and downward in pixel space.
type Canvas struct {
	Width  int
	Height int
	X      Range
	Y      Range
}

// NewYorkCity is the lon/lat extent of the five boroughs.
var NewYorkCity = struct{ X, Y Range }{
	X: Range{Min: -74.29, Max: -73.69},
	Y: Range{Min: 40.49, Max: 40.92},
}

func (c Canvas) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	if !(c.X.Max > c.X.Min) || !(c.Y.Max > c.Y.Min) {
		return fmt.Errorf("canvas ranges must be non-empty: x=%v y=%v", c.X, c.Y)
	}
	return nil
}

// pixel returns the grid offset of (x, y), or false when it is outside the
// extent. The upper edge of each range lands in the last pixel.
func (c Canvas) pixel(x, y float64) (int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) ||
		x < c.X.Min || x > c.X.Max || y < c.Y.Min || y > c.Y.Max {
		return 0, false
	}
	px := int((x - c.X.Min) / (c.X.Max - c.X.Min) * float64(c.Width))
	py := int((y - c.Y.Min) / (c.Y.Max - c.Y.Min) * float64(c.Height))
	if px >= c.Width {
		px = c.Width - 1
	}
	if py >= c.Height {
		py = c.Height - 1
	}
	row := c.Height - 1 - py
	return row*c.Width + px, true
}

// Agg is a per-pixel count, row-major with row 0 at the top.
type Agg struct {
	Width  int
	Height int
	Counts []uint32
}

// At returns the count at column x, row y.
func (a *Agg) At(x, y int) uint32 {
	return a.Counts[y*a.Width+x]
}

// Total is the number of points that landed on the canvas.
func (a *Agg) Total() uint64 {
	var n uint64
	for _, c := range a.Counts {
		n += uint64(c)
	}
	return n
}

// Points counts the points falling in each pixel. Points outside the
// extent are ignored.
func (c Canvas) Points(xs, ys []float64) (*Agg, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("got %d x values and %d y values", len(xs), len(ys))
	}

	agg := &Agg{Width: c.Width, Height: c.Height, Counts: make([]uint32, c.Width*c.Height)}
	for i := range xs {
		if off, ok := c.pixel(xs[i], ys[i]); ok {
			agg.Counts[off]++
		}
	}
	return agg, nil
}

// CatAgg is a per-pixel count for each category level.
type CatAgg struct {
	Width  int
	Height int
	Levels []string
	Counts [][]uint32 // Counts[level][pixel]
}

// Totals sums the counts of all levels per pixel.
func (a *CatAgg) Totals() []uint32 {
	out := make([]uint32, a.Width*a.Height)
	for _, lvl := range a.Counts {
		for i, c := range lvl {
			out[i] += c
		}
	}
	return out
}

// PointsCat counts points per pixel and per category. Points whose
// category is not one of levels are ignored.
func (c Canvas) PointsCat(xs, ys []float64, cats []string, levels []string) (*CatAgg, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if len(xs) != len(ys) || len(xs) != len(cats) {
		return nil, fmt.Errorf("got %d x, %d y and %d category values", len(xs), len(ys), len(cats))
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no category levels")
	}

	idx := make(map[string]int, len(levels))
	agg := &CatAgg{Width: c.Width, Height: c.Height, Levels: levels, Counts: make([][]uint32, len(levels))}
	for i, l := range levels {
		idx[l] = i
		agg.Counts[i] = make([]uint32, c.Width*c.Height)
	}

	for i := range xs {
		lvl, ok := idx[cats[i]]
		if !ok {
			continue
		}
		if off, ok := c.pixel(xs[i], ys[i]); ok {
			agg.Counts[lvl][off]++
		}
	}
	return agg, nil
}
