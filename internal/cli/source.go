package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/soda"
	"github.com/evcraddock/nycviz/internal/trees"
)

// Count sources.
const (
	sourceAPI = "api"
	sourceDB  = "db"
)

// sourceOptions selects where tree counts are loaded from.
type sourceOptions struct {
	source   string
	pages    int
	pageSize int
	parallel int
}

func (o *sourceOptions) addFlags(cmd *cobra.Command, defaultPages int) {
	cmd.Flags().StringVar(&o.source, "source", sourceAPI, "where to load counts from (api|db)")
	cmd.Flags().IntVar(&o.pages, "pages", defaultPages, "number of API pages to fetch")
	cmd.Flags().IntVar(&o.pageSize, "page-size", soda.DefaultPageSize, "rows per API page")
	cmd.Flags().IntVar(&o.parallel, "parallel", soda.DefaultParallel, "API pages to request at once")
}

// newSodaClient creates a client for the configured tree census resource.
func newSodaClient(parallel int) (*soda.Client, error) {
	c, err := soda.NewClient(getAPIURL(), getAppToken())
	if err != nil {
		return nil, err
	}
	c.SetParallel(parallel)
	return c, nil
}

// loadCounts fetches counts of kind from the API or the stored snapshot.
// Any failure is returned to the caller; there is no fallback.
func loadCounts(ctx context.Context, kind trees.Kind, o sourceOptions) ([]trees.Count, error) {
	switch o.source {
	case sourceAPI:
		c, err := newSodaClient(o.parallel)
		if err != nil {
			return nil, err
		}
		return trees.Fetch(ctx, c, kind, o.pages, o.pageSize)

	case sourceDB:
		database, err := openDB()
		if err != nil {
			return nil, err
		}
		defer closeDB(database)

		counts, snap, err := trees.NewRepository(database).LoadSnapshot(kind)
		if err != nil {
			return nil, fmt.Errorf("loading %s snapshot (run `nycviz sync` first): %w", kind, err)
		}
		slog.Info("loaded snapshot",
			"kind", string(kind),
			"rows", len(counts),
			"fetched_at", snap.FetchedAt,
			"source_url", snap.SourceURL,
		)
		return counts, nil
	}
	return nil, fmt.Errorf("invalid --source %q (%s|%s)", o.source, sourceAPI, sourceDB)
}
