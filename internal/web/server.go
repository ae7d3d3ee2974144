// Package web provides the HTTP server and handlers for the tree health
// dashboard.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/evcraddock/nycviz/internal/logging"
	"github.com/evcraddock/nycviz/internal/trees"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the dashboard HTTP server. Every request recomputes its view
// from the full table.
type Server struct {
	table     *trees.Table
	species   []string
	boroughs  []string
	templates *template.Template
	mux       *http.ServeMux
}

// NewServer creates a dashboard over table. The table is never modified.
func NewServer(table *trees.Table) (*Server, error) {
	funcMap := template.FuncMap{
		"formatInt":     tmplFormatInt,
		"formatPercent": tmplFormatPercent,
		"f1":            tmplF1,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		table:     table,
		species:   table.Species(),
		boroughs:  table.Boroughs(),
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/table", s.handleAPITable)
	s.mux.HandleFunc("/api/health", s.handleAPIHealth)
	s.mux.HandleFunc("/api/stewardship", s.handleAPIStewardship)
	s.mux.HandleFunc("/", s.handleDashboard)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler returns the server wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(s)
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "url", fmt.Sprintf("http://localhost:%d", port), "rows", s.table.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// render executes the named template.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// Template helper functions

func tmplFormatInt(n int64) string {
	return formatWithCommas(n)
}

func tmplFormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

func tmplF1(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

func formatWithCommas(n int64) string {
	if n < 0 {
		return "-" + formatWithCommas(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
