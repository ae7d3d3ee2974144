package web

import (
	"github.com/evcraddock/nycviz/internal/trees"
)

// Figure is a bar chart description shared by the JSON API and the SVG
// renderer.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one bar series.
type Trace struct {
	Type string    `json:"type"`
	Name string    `json:"name,omitempty"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

// Layout holds axis titles and the bar mode.
type Layout struct {
	XAxisTitle string `json:"xaxis_title"`
	YAxisTitle string `json:"yaxis_title"`
	BarMode    string `json:"barmode,omitempty"`
}

// healthFigure is the distribution of health for one selection.
func healthFigure(t *trees.Table) Figure {
	counts := t.HealthCounts()
	tr := Trace{Type: "bar", X: make([]string, 0, len(counts)), Y: make([]float64, 0, len(counts))}
	for _, c := range counts {
		tr.X = append(tr.X, c.Key)
		tr.Y = append(tr.Y, c.Value)
	}
	return Figure{
		Data:   []Trace{tr},
		Layout: Layout{XAxisTitle: "Health", YAxisTitle: "Number of trees"},
	}
}

// stewardshipFigure stacks the percent of trees in each health level per
// steward level, Good at the bottom.
func stewardshipFigure(t *trees.Table) Figure {
	rows := t.StewardHealthPercent()
	x := make([]string, len(rows))
	good := make([]float64, len(rows))
	fair := make([]float64, len(rows))
	poor := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Steward
		good[i], fair[i], poor[i] = r.Good, r.Fair, r.Poor
	}
	return Figure{
		Data: []Trace{
			{Type: "bar", Name: trees.Good, X: x, Y: good},
			{Type: "bar", Name: trees.Fair, X: x, Y: fair},
			{Type: "bar", Name: trees.Poor, X: x, Y: poor},
		},
		Layout: Layout{XAxisTitle: "Number of stewards", YAxisTitle: "Percent of trees", BarMode: "stack"},
	}
}
