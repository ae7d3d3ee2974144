package web

import (
	"encoding/json"
	"net/http"

	"github.com/evcraddock/nycviz/internal/trees"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

type tableResponse struct {
	Species string        `json:"species"`
	Borough string        `json:"borough"`
	Total   int64         `json:"total"`
	Rows    []trees.Count `json:"rows"`
}

// apiSubset validates the method and returns the selected rows.
func (s *Server) apiSubset(w http.ResponseWriter, r *http.Request) (selection, *trees.Table, bool) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return selection{}, nil, false
	}
	sel := parseSelection(r)
	return sel, s.table.Filter(sel.Species, sel.Borough), true
}

// handleAPITable returns the raw counts for the selection.
func (s *Server) handleAPITable(w http.ResponseWriter, r *http.Request) {
	sel, subset, ok := s.apiSubset(w, r)
	if !ok {
		return
	}
	rows := subset.Rows()
	if rows == nil {
		rows = []trees.Count{}
	}
	apiJSON(w, tableResponse{
		Species: sel.Species,
		Borough: sel.Borough,
		Total:   subset.Total(),
		Rows:    rows,
	}, http.StatusOK)
}

// handleAPIHealth returns the health distribution figure.
func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	_, subset, ok := s.apiSubset(w, r)
	if !ok {
		return
	}
	apiJSON(w, healthFigure(subset), http.StatusOK)
}

// handleAPIStewardship returns the stacked health vs stewardship figure.
func (s *Server) handleAPIStewardship(w http.ResponseWriter, r *http.Request) {
	_, subset, ok := s.apiSubset(w, r)
	if !ok {
		return
	}
	apiJSON(w, stewardshipFigure(subset), http.StatusOK)
}

// handleHealth is the liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
