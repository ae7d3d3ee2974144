package web

import (
	"net/http"

	"github.com/evcraddock/nycviz/internal/trees"
)

// selection is the species and borough chosen in the dropdowns.
type selection struct {
	Species string
	Borough string
}

// parseSelection reads species and borough from the query string, falling
// back to the defaults when absent. Values are not validated; an unknown
// pair selects nothing.
func parseSelection(r *http.Request) selection {
	q := r.URL.Query()
	sel := selection{Species: q.Get("species"), Borough: q.Get("borough")}
	if sel.Species == "" {
		sel.Species = trees.DefaultSpecies
	}
	if sel.Borough == "" {
		sel.Borough = trees.DefaultBorough
	}
	return sel
}

type dashboardData struct {
	Selected    selection
	Species     []string
	Boroughs    []string
	Rows        []trees.Count
	Total       int64
	Health      chartView
	Stewardship chartView
}

// handleDashboard renders the dashboard page for the current selection.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel := parseSelection(r)
	subset := s.table.Filter(sel.Species, sel.Borough)

	s.render(w, "dashboard.html", dashboardData{
		Selected:    sel,
		Species:     s.species,
		Boroughs:    s.boroughs,
		Rows:        subset.Rows(),
		Total:       subset.Total(),
		Health:      svgChart(healthFigure(subset)),
		Stewardship: svgChart(stewardshipFigure(subset)),
	})
}
