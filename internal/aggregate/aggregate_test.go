package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCountBy(t *testing.T) {
	keys := []string{"b", "a", "b", "", "c", "b"}

	tests := []struct {
		name  string
		order []string
		want  []Count
	}{
		{
			name: "lexical order",
			want: []Count{{"a", 1}, {"b", 3}, {"c", 1}},
		},
		{
			name:  "explicit order with zero fill",
			order: []string{"c", "z", "b"},
			want:  []Count{{"c", 1}, {"z", 0}, {"b", 3}, {"a", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountBy(len(keys), func(i int) string { return keys[i] }, tt.order)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("counts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSumBy(t *testing.T) {
	keys := []string{"Good", "Fair", "Good"}
	vals := []float64{10, 4, 6}

	got := SumBy(len(keys), func(i int) string { return keys[i] }, func(i int) float64 { return vals[i] }, nil)
	want := []Count{{"Fair", 4}, {"Good", 16}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sums mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogram2D(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 9}
	ys := []float64{0, 0, 5, 5, 10, 50}

	g, err := Histogram2D(xs, ys, []float64{0, 2, 4}, []float64{0, 5, 10})
	if err != nil {
		t.Fatalf("Histogram2D: %v", err)
	}

	want := [][]float64{
		{3, 1},
		{0, 1},
	}
	if diff := cmp.Diff(want, g.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogram2DBadEdges(t *testing.T) {
	if _, err := Histogram2D(nil, nil, []float64{1, 1}, []float64{0, 1}); err == nil {
		t.Fatal("expected error for non-increasing edges")
	}
}

func TestCrossTab(t *testing.T) {
	rows := []string{"lo", "lo", "hi", "mid", "??"}
	cols := []string{"a", "b", "b", "a", "a"}

	got := CrossTab(rows, cols, []string{"lo", "mid", "hi"}, []string{"a", "b"})
	want := [][]int{
		{1, 1},
		{1, 0},
		{0, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("crosstab mismatch (-want +got):\n%s", diff)
	}
}
