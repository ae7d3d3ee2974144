package pluto

import (
	"fmt"

	"github.com/evcraddock/nycviz/internal/binning"
)

// Cuts configures the value cut points used by Classify.
type Cuts struct {
	Land  []float64
	Total []float64
}

// DefaultCuts returns the land and total cut points used for the map.
func DefaultCuts() Cuts {
	return Cuts{Land: DefaultLandCuts, Total: DefaultTotalCuts}
}

// Classify derives the decade and value levels of every lot. The result
// is parallel to lots.
func Classify(lots []Lot, cuts Cuts) ([]Levels, error) {
	if len(lots) == 0 {
		return nil, nil
	}

	years := Column(lots, func(l Lot) float64 { return l.YearBuilt })
	land := Column(lots, func(l Lot) float64 { return l.AssessLand })
	total := Column(lots, func(l Lot) float64 { return l.AssessTot })

	decadeBins := binning.DecadeBins(1850, 2010)
	landLevels, err := binning.Cut(land, cuts.Land, LandLabels)
	if err != nil {
		return nil, fmt.Errorf("binning land value: %w", err)
	}
	totalLevels, err := binning.Cut(total, cuts.Total, TotalLabels)
	if err != nil {
		return nil, fmt.Errorf("binning total value: %w", err)
	}

	out := make([]Levels, len(lots))
	for i := range lots {
		out[i] = Levels{
			Decade:     decadeBins.Label(years[i]),
			LandValue:  landLevels[i],
			TotalValue: totalLevels[i],
		}
	}
	return out, nil
}

// Column extracts one numeric column.
func Column(lots []Lot, f func(Lot) float64) []float64 {
	out := make([]float64, len(lots))
	for i, l := range lots {
		out[i] = f(l)
	}
	return out
}
