package trees

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/evcraddock/nycviz/internal/soda"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("$group"); got != "spc_common,health" {
			t.Errorf("$group = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		body := `[]`
		if r.URL.Query().Get("$offset") == "" {
			body = `[
				{"spc_common":"ginkgo","health":"Good","count_tree_id":"12"},
				{"spc_common":"ginkgo","count_tree_id":"3"},
				{"spc_common":"pin oak","health":"Fair","count_tree_id":4}
			]`
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write: %v", err)
		}
	}))
	defer srv.Close()

	c, err := soda.NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	counts, err := Fetch(context.Background(), c, KindSpeciesHealth, 2, 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := []Count{
		{Species: "ginkgo", Health: "Good", Trees: 12},
		{Species: "pin oak", Health: "Fair", Trees: 4},
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := soda.NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := Fetch(context.Background(), c, KindFull, 1, 10); err == nil {
		t.Fatal("expected error")
	}
}
