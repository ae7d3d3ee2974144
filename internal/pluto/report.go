package pluto

import (
	"fmt"
	"math"
	"strconv"

	"github.com/evcraddock/nycviz/internal/aggregate"
	"github.com/evcraddock/nycviz/internal/binning"
)

// GridBins is the number of edges per axis of the year x floors histogram.
const GridBins = 200

// MaxLowRise is the tallest building in the low-rise floor histogram.
const MaxLowRise = 9

// DecadeThreshold counts, per decade, the lots with at least Min floors.
type DecadeThreshold struct {
	Min    float64           `json:"min"`
	Counts []aggregate.Count `json:"counts"`
}

// Report holds the grouped tables printed by the pluto command.
type Report struct {
	Lots           int                 `json:"lots"`
	YearCounts     []aggregate.Count   `json:"year_counts"`
	DecadeCounts   []aggregate.Count   `json:"decade_counts"`
	LowRiseFloors  []aggregate.Count   `json:"low_rise_floors"`
	FloorsByDecade []DecadeThreshold   `json:"floors_by_decade"`
	LandLevels     []aggregate.Count   `json:"land_levels"`
	TotalLevels    []aggregate.Count   `json:"total_levels"`
	CombinedLevels []aggregate.Count   `json:"combined_levels"`
	ValueCrossTab  [][]int             `json:"value_crosstab"`
	YearFloorGrid  *aggregate.Grid     `json:"year_floor_grid,omitempty"`
	Thresholds     []binning.Threshold `json:"floor_thresholds"`
}

// Analyze groups lots and their levels into a Report. levels must be
// parallel to lots.
func Analyze(lots []Lot, levels []Levels) (*Report, error) {
	n := len(lots)
	if len(levels) != n {
		return nil, fmt.Errorf("got %d levels for %d lots", len(levels), n)
	}
	decades := binning.DecadeBins(1850, 2010).Labels()
	floors := Column(lots, func(l Lot) float64 { return l.NumFloors })

	year := func(i int) string { return formatYear(lots[i].YearBuilt) }
	decade := func(i int) string { return levels[i].Decade }
	lowRise := func(i int) string {
		if lots[i].NumFloors > MaxLowRise {
			return ""
		}
		return formatYear(lots[i].NumFloors)
	}

	r := &Report{
		Lots:           n,
		YearCounts:     aggregate.CountBy(n, year, nil),
		DecadeCounts:   aggregate.CountBy(n, decade, decades),
		LowRiseFloors:  aggregate.CountBy(n, lowRise, lowRiseOrder()),
		LandLevels:     aggregate.CountBy(n, func(i int) string { return levels[i].LandValue }, LandLabels),
		TotalLevels:    aggregate.CountBy(n, func(i int) string { return levels[i].TotalValue }, TotalLabels),
		CombinedLevels: aggregate.CountBy(n, func(i int) string { return levels[i].Combined() }, CombinedLevels()),
		Thresholds:     binning.Thresholds(floors, FloorThresholds),
	}

	for _, floor := range FloorThresholds {
		atLeast := func(i int) string {
			if lots[i].NumFloors < floor {
				return ""
			}
			return levels[i].Decade
		}
		r.FloorsByDecade = append(r.FloorsByDecade, DecadeThreshold{
			Min:    floor,
			Counts: aggregate.CountBy(n, atLeast, decades),
		})
	}

	land := make([]string, n)
	total := make([]string, n)
	for i, l := range levels {
		land[i], total[i] = l.LandValue, l.TotalValue
	}
	r.ValueCrossTab = aggregate.CrossTab(land, total, LandLabels, TotalLabels)

	grid, err := yearFloorGrid(lots)
	if err != nil {
		return nil, err
	}
	r.YearFloorGrid = grid
	return r, nil
}

// yearFloorGrid bins year built linearly and floors logarithmically. It
// returns nil when either axis has no spread.
func yearFloorGrid(lots []Lot) (*aggregate.Grid, error) {
	years := Column(lots, func(l Lot) float64 { return l.YearBuilt })
	floors := Column(lots, func(l Lot) float64 { return l.NumFloors })

	minYear, maxYear, ok := binning.Range(years)
	if !ok || maxYear <= minYear {
		return nil, nil
	}
	_, maxFloors, ok := binning.Range(floors)
	if !ok || maxFloors <= 1 {
		return nil, nil
	}

	floorEdges := binning.Logspace(0, math.Log10(maxFloors), GridBins)
	floorEdges[len(floorEdges)-1] = maxFloors
	return aggregate.Histogram2D(years, floors,
		binning.Linspace(minYear, maxYear, GridBins), floorEdges)
}

func lowRiseOrder() []string {
	out := make([]string, 0, MaxLowRise)
	for f := 1; f <= MaxLowRise; f++ {
		out = append(out, formatYear(float64(f)))
	}
	return out
}

// formatYear renders a whole-number value such as a year or floor count.
func formatYear(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatInt(int64(v), 10)
}
