package trees

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/evcraddock/nycviz/internal/aggregate"
)

func sampleTable() *Table {
	return NewTable([]Count{
		{Species: "London planetree", Borough: "Queens", Health: "Good", Steward: NoStewards, Trees: 600},
		{Species: "London planetree", Borough: "Queens", Health: "Fair", Steward: NoStewards, Trees: 300},
		{Species: "London planetree", Borough: "Queens", Health: "Poor", Steward: NoStewards, Trees: 100},
		{Species: "London planetree", Borough: "Queens", Health: "Good", Steward: "1or2", Trees: 30},
		{Species: "London planetree", Borough: "Queens", Health: "Fair", Steward: "1or2", Trees: 10},
		{Species: "London planetree", Borough: "Bronx", Health: "Good", Steward: NoStewards, Trees: 50},
		{Species: "ginkgo", Borough: "Queens", Health: "Poor", Steward: NoStewards, Trees: 5},
	})
}

func TestFilter(t *testing.T) {
	tbl := sampleTable()

	got := tbl.Filter("London planetree", "Queens")
	if got.Len() != 5 {
		t.Fatalf("got %d rows, want 5", got.Len())
	}
	for _, r := range got.Rows() {
		if r.Species != "London planetree" || r.Borough != "Queens" {
			t.Errorf("row %+v does not match filter", r)
		}
	}

	if empty := tbl.Filter("ginkgo", "Bronx"); empty.Len() != 0 {
		t.Errorf("absent pair returned %d rows", empty.Len())
	}
	if empty := tbl.Filter("", ""); empty.Len() != 0 {
		t.Errorf("empty selection returned %d rows", empty.Len())
	}
}

func TestUniqueValues(t *testing.T) {
	tbl := sampleTable()
	if diff := cmp.Diff([]string{"London planetree", "ginkgo"}, tbl.Species()); diff != "" {
		t.Errorf("species mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Queens", "Bronx"}, tbl.Boroughs()); diff != "" {
		t.Errorf("boroughs mismatch (-want +got):\n%s", diff)
	}
}

func TestHealthCounts(t *testing.T) {
	got := sampleTable().Filter("London planetree", "Queens").HealthCounts()
	want := []aggregate.Count{
		{Key: "Fair", Value: 310},
		{Key: "Good", Value: 630},
		{Key: "Poor", Value: 100},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("health counts mismatch (-want +got):\n%s", diff)
	}
}

func TestStewardHealthPercent(t *testing.T) {
	got := sampleTable().Filter("London planetree", "Queens").StewardHealthPercent()
	if len(got) != 2 {
		t.Fatalf("got %d steward levels, want 2", len(got))
	}

	bySteward := map[string]StewardHealth{}
	for _, sh := range got {
		bySteward[sh.Steward] = sh
	}

	none := bySteward[NoStewards]
	if sum := none.Good + none.Fair + none.Poor; math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %f, want 100", sum)
	}
	if math.Abs(none.Good-60) > 1e-9 {
		t.Errorf("good = %f, want 60", none.Good)
	}

	// No Poor trees for 1or2: the level is zero-filled, not omitted.
	few := bySteward["1or2"]
	if few.Poor != 0 {
		t.Errorf("poor = %f, want 0", few.Poor)
	}
	if math.Abs(few.Good-75) > 1e-9 || math.Abs(few.Fair-25) > 1e-9 {
		t.Errorf("1or2 = %+v, want 75/25/0", few)
	}

	if got[0].Steward != NoStewards {
		t.Errorf("first steward = %q, want %q", got[0].Steward, NoStewards)
	}
}

func TestStewardHealthPercentEmpty(t *testing.T) {
	if got := NewTable(nil).StewardHealthPercent(); len(got) != 0 {
		t.Errorf("got %d rows for empty table", len(got))
	}
}

func TestSpeciesHealth(t *testing.T) {
	tbl := sampleTable()

	got := tbl.SpeciesHealth("London planetree")
	want := map[string]int64{"Good": 680, "Fair": 310, "Poor": 100}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("species health mismatch (-want +got):\n%s", diff)
	}

	var sum int64
	for _, n := range got {
		sum += n
	}
	var total int64
	for _, r := range tbl.Rows() {
		if r.Species == "London planetree" {
			total += r.Trees
		}
	}
	if sum != total {
		t.Errorf("sum = %d, want %d", sum, total)
	}

	unknown := tbl.SpeciesHealth("dragon tree")
	if unknown == nil || len(unknown) != 0 {
		t.Errorf("unknown species = %v, want empty map", unknown)
	}
}

func TestTotal(t *testing.T) {
	if got := sampleTable().Total(); got != 1095 {
		t.Errorf("total = %d, want 1095", got)
	}
}
