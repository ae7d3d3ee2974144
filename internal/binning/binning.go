// Package binning maps continuous values onto labeled intervals.
package binning

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	// ErrLabelCount is returned when the label count does not match the bins.
	ErrLabelCount = errors.New("label count must be one more than cut point count")
	// ErrBreakOrder is returned when break points are not strictly increasing.
	ErrBreakOrder = errors.New("break points must increase monotonically")
	// ErrNoValues is returned when there is nothing to bin.
	ErrNoValues = errors.New("no non-missing values to bin")
)

// Cut partitions the observed range of values into len(cutPoints)+1
// intervals and returns the label of each value's interval.
//
// The break points are the minimum, the cut points, then the maximum.
// Intervals are closed on the right, so a value equal to a cut point lands
// in the lower bin, and the lowest interval also includes the minimum.
// NaN values get an empty label. When labels is nil the bins are labeled
// "0", "1", ... in order.
func Cut(values []float64, cutPoints []float64, labels []string) ([]string, error) {
	minVal, maxVal, ok := Range(values)
	if !ok {
		return nil, ErrNoValues
	}

	breaks := make([]float64, 0, len(cutPoints)+2)
	breaks = append(breaks, minVal)
	breaks = append(breaks, cutPoints...)
	breaks = append(breaks, maxVal)

	if labels == nil {
		labels = DefaultLabels(len(cutPoints) + 1)
	}
	if len(labels) != len(cutPoints)+1 {
		return nil, fmt.Errorf("%w: got %d labels for %d cut points", ErrLabelCount, len(labels), len(cutPoints))
	}

	b, err := NewBins(breaks, labels)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = b.Label(v)
	}
	return out, nil
}

// DefaultLabels returns "0" .. "n-1".
func DefaultLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

// Range returns the minimum and maximum of the non-NaN values.
func Range(values []float64) (minVal, maxVal float64, ok bool) {
	minVal, maxVal = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal, ok
}

// Bins is a fixed set of right-closed intervals with the lowest interval
// inclusive of its left edge.
type Bins struct {
	edges  []float64
	labels []string
}

// NewBins builds bins from strictly increasing edges. There is one label
// per interval, so len(labels) must be len(edges)-1.
func NewBins(edges []float64, labels []string) (*Bins, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two edges", ErrBreakOrder)
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, fmt.Errorf("%w: %g is not above %g", ErrBreakOrder, edges[i], edges[i-1])
		}
	}
	if labels == nil {
		labels = DefaultLabels(len(edges) - 1)
	}
	if len(labels) != len(edges)-1 {
		return nil, fmt.Errorf("%w: got %d labels for %d intervals", ErrLabelCount, len(labels), len(edges)-1)
	}
	return &Bins{edges: edges, labels: labels}, nil
}

// Index returns the interval index of v, or -1 when v is NaN or outside
// the edges.
func (b *Bins) Index(v float64) int {
	if math.IsNaN(v) || v < b.edges[0] || v > b.edges[len(b.edges)-1] {
		return -1
	}
	if v == b.edges[0] {
		return 0
	}
	// First edge >= v closes the interval v belongs to.
	i := sort.SearchFloat64s(b.edges, v)
	return i - 1
}

// Label returns the label of v's interval, or "" when v falls outside.
func (b *Bins) Label(v float64) string {
	i := b.Index(v)
	if i < 0 {
		return ""
	}
	return b.labels[i]
}

// Labels returns the interval labels in order.
func (b *Bins) Labels() []string {
	return b.labels
}

// Len is the number of intervals.
func (b *Bins) Len() int {
	return len(b.labels)
}
