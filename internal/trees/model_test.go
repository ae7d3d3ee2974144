package trees

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/evcraddock/nycviz/internal/soda"
)

func TestKindQuery(t *testing.T) {
	want := "$select=spc_common%2Chealth%2Ccount%28tree_id%29&$group=spc_common%2Chealth"
	if got := KindSpeciesHealth.Query().Encode(); got != want {
		t.Errorf("query = %q, want %q", got, want)
	}

	full := KindFull.Query()
	if len(full.Select) != 5 || full.Select[4] != "count(tree_id)" {
		t.Errorf("full select = %v", full.Select)
	}
	if len(full.Group) != 4 {
		t.Errorf("full group = %v", full.Group)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("species_health"); err != nil || k != KindSpeciesHealth {
		t.Errorf("ParseKind = %q, %v", k, err)
	}
	if _, err := ParseKind("bogus"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestFromRows(t *testing.T) {
	rows := []soda.Row{
		{"spc_common": "ginkgo", "boroname": "Queens", "health": "Good", "steward": "None", "count_tree_id": "12"},
		{"spc_common": "ginkgo", "boroname": "Queens", "health": "Fair", "steward": "1or2", "count_tree_id": float64(3)},
		{"boroname": "Queens", "health": "Good", "steward": "None", "count_tree_id": "7"},
		{"spc_common": "pin oak", "boroname": "Bronx", "steward": "None", "count_tree_id": "7"},
		{"spc_common": "pin oak", "boroname": "Bronx", "health": "Poor", "steward": "None", "count_tree_id": "x"},
		{"spc_common": "pin oak", "boroname": "Bronx", "health": "Poor", "steward": "None", "count_tree_id": 1.5},
	}

	got, dropped := FromRows(KindFull, rows)
	if dropped != 4 {
		t.Errorf("dropped = %d, want 4", dropped)
	}
	want := []Count{
		{Species: "ginkgo", Borough: "Queens", Health: "Good", Steward: "None", Trees: 12},
		{Species: "ginkgo", Borough: "Queens", Health: "Fair", Steward: "1or2", Trees: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRowsSpeciesHealthIgnoresOtherColumns(t *testing.T) {
	rows := []soda.Row{
		{"spc_common": "ginkgo", "health": "Good", "count_tree_id": "12"},
	}
	got, dropped := FromRows(KindSpeciesHealth, rows)
	if dropped != 0 || len(got) != 1 {
		t.Fatalf("got %d counts, %d dropped", len(got), dropped)
	}
	if got[0].Borough != "" || got[0].Steward != "" {
		t.Errorf("unexpected grouping columns: %+v", got[0])
	}
}

func TestNormalizeStewards(t *testing.T) {
	counts := []Count{{Steward: "None"}, {Steward: "1or2"}}
	NormalizeStewards(counts)
	if counts[0].Steward != NoStewards {
		t.Errorf("steward = %q, want %q", counts[0].Steward, NoStewards)
	}
	if counts[1].Steward != "1or2" {
		t.Errorf("steward = %q, want unchanged", counts[1].Steward)
	}
}
