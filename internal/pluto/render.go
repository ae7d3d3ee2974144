package pluto

import (
	"fmt"
	"image/color"

	"github.com/evcraddock/nycviz/internal/binning"
	"github.com/evcraddock/nycviz/internal/raster"
)

// RenderOptions configures the exported images.
type RenderOptions struct {
	// Dir receives the PNG files.
	Dir string
	// How overrides each image's default shading when set.
	How string
}

// plot is one exported raster and its default look.
type plot struct {
	name   string
	how    raster.How
	spread int
	bg     color.NRGBA
}

var (
	yearVsFloors = plot{name: "yearvsnumfloors", how: raster.Log, spread: 2, bg: raster.Black}
	fireryMap    = plot{name: "firery", how: raster.Log, spread: 2, bg: raster.Black}
	valueMap     = plot{name: "cloropleth", how: raster.EqHist, spread: 1, bg: raster.LightGrey}
)

// Render writes the year-vs-floors density plot, the lot density map and
// the bivariate value map. It returns the written paths.
func Render(lots []Lot, levels []Levels, opts RenderOptions) ([]string, error) {
	if len(lots) == 0 {
		return nil, fmt.Errorf("no lots to render")
	}
	if len(levels) != len(lots) {
		return nil, fmt.Errorf("got %d levels for %d lots", len(levels), len(lots))
	}

	var override *raster.How
	if opts.How != "" {
		h, err := raster.ParseHow(opts.How)
		if err != nil {
			return nil, err
		}
		override = &h
	}
	howFor := func(p plot) raster.How {
		if override != nil {
			return *override
		}
		return p.how
	}

	years := Column(lots, func(l Lot) float64 { return l.YearBuilt })
	floors := Column(lots, func(l Lot) float64 { return l.NumFloors })
	lons := Column(lots, func(l Lot) float64 { return l.Lon })
	lats := Column(lots, func(l Lot) float64 { return l.Lat })

	var paths []string

	minYear, maxYear, _ := binning.Range(years)
	minFloors, maxFloors, _ := binning.Range(floors)
	if maxYear > minYear && maxFloors > minFloors {
		cvs := raster.Canvas{
			Width:  800,
			Height: 500,
			X:      raster.Range{Min: minYear, Max: maxYear},
			Y:      raster.Range{Min: minFloors, Max: maxFloors},
		}
		agg, err := cvs.Points(years, floors)
		if err != nil {
			return nil, fmt.Errorf("aggregating %s: %w", yearVsFloors.name, err)
		}
		shaded := raster.Shade(agg, raster.Greys9, howFor(yearVsFloors))
		path, err := raster.Export(raster.Spread(shaded, yearVsFloors.spread), opts.Dir, yearVsFloors.name, yearVsFloors.bg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	city := raster.Canvas{Width: 700, Height: 700, X: raster.NewYorkCity.X, Y: raster.NewYorkCity.Y}

	agg, err := city.Points(lons, lats)
	if err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", fireryMap.name, err)
	}
	shaded := raster.Shade(agg, raster.Inferno, howFor(fireryMap))
	path, err := raster.Export(raster.Spread(shaded, fireryMap.spread), opts.Dir, fireryMap.name, fireryMap.bg)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	combined := make([]string, len(levels))
	for i, l := range levels {
		combined[i] = l.Combined()
	}
	catAgg, err := city.PointsCat(lons, lats, combined, CombinedLevels())
	if err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", valueMap.name, err)
	}
	key, err := raster.NewColorKey(CombinedLevels(), raster.Bivariate)
	if err != nil {
		return nil, fmt.Errorf("building colour key: %w", err)
	}
	catImg, err := raster.ShadeCat(catAgg, key, howFor(valueMap))
	if err != nil {
		return nil, fmt.Errorf("shading %s: %w", valueMap.name, err)
	}
	path, err = raster.Export(raster.Spread(catImg, valueMap.spread), opts.Dir, valueMap.name, valueMap.bg)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	return paths, nil
}
