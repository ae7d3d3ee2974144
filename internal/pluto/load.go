package pluto

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/evcraddock/nycviz/internal/stateplane"
)

// requiredColumns are the numeric PLUTO columns a lot must have.
var requiredColumns = []string{"yearbuilt", "numfloors", "assessland", "assesstot", "xcoord", "ycoord"}

// LoadStats reports what happened to the rows of a CSV file.
type LoadStats struct {
	Read      int `json:"read"`
	Dropped   int `json:"dropped"`
	Outliers  int `json:"outliers"`
	OffCanvas int `json:"off_canvas"`
}

// LoadFile opens path and reads it with Load.
func LoadFile(path string) ([]Lot, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("closing file", "path", path, "error", cerr)
		}
	}()
	return Load(f)
}

// Load reads PLUTO CSV records by header name. Rows missing or failing to
// parse any required numeric column are dropped and counted.
func Load(r io.Reader) ([]Lot, LoadStats, error) {
	var stats LoadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("reading header: empty file")
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, stats, fmt.Errorf("missing column %q", col)
		}
	}

	var lots []Lot
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading row %d: %w", stats.Read+1, err)
		}
		stats.Read++

		lot, ok := parseLot(rec, idx)
		if !ok {
			stats.Dropped++
			continue
		}
		lots = append(lots, lot)
	}

	return lots, stats, nil
}

func parseLot(rec []string, idx map[string]int) (Lot, bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	num := func(name string) (float64, bool) {
		s := field(name)
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}

	var lot Lot
	vals := []*float64{&lot.YearBuilt, &lot.NumFloors, &lot.AssessLand, &lot.AssessTot, &lot.XCoord, &lot.YCoord}
	for i, col := range requiredColumns {
		v, ok := num(col)
		if !ok {
			return Lot{}, false
		}
		*vals[i] = v
	}
	lot.BBL = field("bbl")
	lot.Borough = field("borough")

	return lot, true
}

// Clean drops outliers (built outside 1851..2019, or zero floors) and rounds
// partial floors up to whole floors.
func Clean(lots []Lot, stats *LoadStats) []Lot {
	out := lots[:0:0]
	for _, l := range lots {
		if l.YearBuilt <= 1850 || l.YearBuilt >= 2020 || l.NumFloors == 0 {
			if stats != nil {
				stats.Outliers++
			}
			continue
		}
		l.NumFloors = math.Ceil(l.NumFloors)
		out = append(out, l)
	}
	return out
}

// Project fills Lon/Lat from the State Plane feet coordinates and drops
// lots whose position lands outside a loose North American window.
func Project(lots []Lot, p *stateplane.Projection, stats *LoadStats) []Lot {
	out := lots[:0:0]
	for _, l := range lots {
		l.Lon, l.Lat = p.FeetToLonLat(l.XCoord, l.YCoord)
		if !(l.Lon < -60 && l.Lon > -100 && l.Lat < 60 && l.Lat > 20) {
			if stats != nil {
				stats.OffCanvas++
			}
			continue
		}
		out = append(out, l)
	}
	return out
}
