package trees

import (
	"sort"

	"github.com/evcraddock/nycviz/internal/aggregate"
)

// Table is an in-memory set of counts. It is read-only once built, so a
// single Table may serve concurrent requests.
type Table struct {
	rows []Count
}

// NewTable wraps counts. The slice is not copied.
func NewTable(rows []Count) *Table {
	return &Table{rows: rows}
}

// Rows returns the counts in load order.
func (t *Table) Rows() []Count {
	return t.rows
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Filter returns the rows matching both species and borough. A pair that
// is absent from the data yields an empty table.
func (t *Table) Filter(species, borough string) *Table {
	var out []Count
	for _, r := range t.rows {
		if r.Species == species && r.Borough == borough {
			out = append(out, r)
		}
	}
	return &Table{rows: out}
}

// Species returns the distinct species in first-seen order.
func (t *Table) Species() []string {
	return t.unique(func(c Count) string { return c.Species })
}

// Boroughs returns the distinct boroughs in first-seen order.
func (t *Table) Boroughs() []string {
	return t.unique(func(c Count) string { return c.Borough })
}

func (t *Table) unique(f func(Count) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.rows {
		v := f(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Total sums the tree counts of all rows.
func (t *Table) Total() int64 {
	var n int64
	for _, r := range t.rows {
		n += r.Trees
	}
	return n
}

// HealthCounts sums trees per health level, in lexical order of the levels
// present.
func (t *Table) HealthCounts() []aggregate.Count {
	return aggregate.SumBy(len(t.rows),
		func(i int) string { return t.rows[i].Health },
		func(i int) float64 { return float64(t.rows[i].Trees) },
		nil)
}

// StewardHealth is the share of each health level among the trees of one
// steward level. Percentages are 0-100.
type StewardHealth struct {
	Steward string  `json:"steward"`
	Good    float64 `json:"Good"`
	Fair    float64 `json:"Fair"`
	Poor    float64 `json:"Poor"`
}

// StewardHealthPercent computes, for each steward level present, the
// percent of its trees in each health level. Health levels absent for a
// steward level are zero rather than omitted. Rows are ordered by steward.
func (t *Table) StewardHealthPercent() []StewardHealth {
	totals := make(map[string]int64)
	byHealth := make(map[string]map[string]int64)
	for _, r := range t.rows {
		totals[r.Steward] += r.Trees
		if byHealth[r.Steward] == nil {
			byHealth[r.Steward] = make(map[string]int64)
		}
		byHealth[r.Steward][r.Health] += r.Trees
	}

	stewards := make([]string, 0, len(totals))
	for s := range totals {
		stewards = append(stewards, s)
	}
	sort.Strings(stewards)

	out := make([]StewardHealth, 0, len(stewards))
	for _, s := range stewards {
		sh := StewardHealth{Steward: s}
		if total := totals[s]; total > 0 {
			pct := func(level string) float64 {
				return float64(byHealth[s][level]) * 100 / float64(total)
			}
			sh.Good, sh.Fair, sh.Poor = pct(Good), pct(Fair), pct(Poor)
		}
		out = append(out, sh)
	}
	return out
}

// SpeciesHealth maps health level to tree count for one species, summed
// across any other grouping columns. An unknown species yields an empty,
// non-nil map.
func (t *Table) SpeciesHealth(species string) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range t.rows {
		if r.Species == species {
			out[r.Health] += r.Trees
		}
	}
	return out
}
