// Package trees models aggregated NYC street tree census counts.
package trees

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/evcraddock/nycviz/internal/soda"
)

// Health levels in display order.
const (
	Good = "Good"
	Fair = "Fair"
	Poor = "Poor"
)

// HealthLevels lists the health ratings from best to worst.
var HealthLevels = []string{Good, Fair, Poor}

// Default dashboard selection.
const (
	DefaultSpecies = "London planetree"
	DefaultBorough = "Queens"
)

// Count is the number of trees sharing one combination of attributes.
// Fields that were not part of the query's grouping are empty.
type Count struct {
	Species string `json:"spc_common"`
	Borough string `json:"boroname,omitempty"`
	Health  string `json:"health"`
	Steward string `json:"steward,omitempty"`
	Trees   int64  `json:"count_tree_id"`
}

// Kind names a query shape and the snapshot it is stored under.
type Kind string

const (
	// KindFull groups by species, borough, health and steward.
	KindFull Kind = "species_borough_health_steward"
	// KindSpeciesHealth groups by species and health only.
	KindSpeciesHealth Kind = "species_health"
)

// ParseKind validates a snapshot kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFull, KindSpeciesHealth:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q (%s|%s)", s, KindFull, KindSpeciesHealth)
}

// Columns returns the grouping columns of the kind.
func (k Kind) Columns() []string {
	if k == KindSpeciesHealth {
		return []string{"spc_common", "health"}
	}
	return []string{"spc_common", "boroname", "health", "steward"}
}

// Query returns the SoQL query counting trees per group.
func (k Kind) Query() soda.Query {
	cols := k.Columns()
	sel := append(append([]string{}, cols...), "count(tree_id)")
	return soda.Query{Select: sel, Group: cols}
}

// FromRows converts SODA rows into counts, dropping rows missing any of
// the kind's columns or a usable count.
func FromRows(kind Kind, rows []soda.Row) (counts []Count, dropped int) {
	cols := kind.Columns()
	for _, r := range rows {
		c, ok := fromRow(r, cols)
		if !ok {
			dropped++
			continue
		}
		counts = append(counts, c)
	}
	return counts, dropped
}

func fromRow(r soda.Row, cols []string) (Count, bool) {
	var c Count
	for _, col := range cols {
		s, ok := r[col].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return Count{}, false
		}
		switch col {
		case "spc_common":
			c.Species = s
		case "boroname":
			c.Borough = s
		case "health":
			c.Health = s
		case "steward":
			c.Steward = s
		}
	}

	n, ok := parseCount(r["count_tree_id"])
	if !ok {
		return Count{}, false
	}
	c.Trees = n
	return c, true
}

func parseCount(v any) (int64, bool) {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	case float64:
		if math.IsNaN(x) || x != math.Trunc(x) {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	}
	return 0, false
}

// NoStewards replaces the "None" steward level so it sorts first.
const NoStewards = "0_stewards"

// NormalizeStewards rewrites steward "None" to NoStewards in place.
func NormalizeStewards(counts []Count) {
	for i := range counts {
		if counts[i].Steward == "None" {
			counts[i].Steward = NoStewards
		}
	}
}
