package binning

import (
	"fmt"
	"math"
)

// Decades returns cut points and labels that group years by decade.
// Cut points sit on the 9-year of each decade so that, with right-closed
// intervals, 1859 lands in the 1850s and 1860 in the 1860s. first and last
// are decade starts, e.g. 1850 and 2010.
func Decades(first, last int) (cutPoints []float64, labels []string) {
	for d := first; d <= last; d += 10 {
		labels = append(labels, fmt.Sprintf("%ds", d))
		if d < last {
			cutPoints = append(cutPoints, float64(d+9))
		}
	}
	return cutPoints, labels
}

// Threshold is the number of values at or above a floor.
type Threshold struct {
	Min   float64 `json:"min"`
	Count int     `json:"count"`
}

// Thresholds counts, for each minimum, the values greater than or equal to it.
func Thresholds(values []float64, mins []float64) []Threshold {
	out := make([]Threshold, len(mins))
	for i, m := range mins {
		out[i].Min = m
		for _, v := range values {
			if v >= m {
				out[i].Count++
			}
		}
	}
	return out
}

// Linspace returns n evenly spaced values over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Logspace returns n values spaced evenly on a log10 scale from
// 10^start to 10^stop.
func Logspace(start, stop float64, n int) []float64 {
	exps := Linspace(start, stop, n)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}
	return exps
}

// DecadeBins returns fixed bins over the whole decades first..last, so the
// labels do not depend on the observed range of the data. The first bin is
// [first, first+9]; years before first have no label.
func DecadeBins(first, last int) *Bins {
	cuts, labels := Decades(first, last)
	edges := make([]float64, 0, len(cuts)+2)
	edges = append(edges, float64(first))
	edges = append(edges, cuts...)
	edges = append(edges, float64(last+9))
	// Edges are strictly increasing by construction.
	b, _ := NewBins(edges, labels)
	return b
}
