package trees

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evcraddock/nycviz/internal/soda"
)

// Fetch loads counts of the given kind from the tree census API. pages
// fixed-size pages are requested; any failed page is an error.
func Fetch(ctx context.Context, c *soda.Client, kind Kind, pages, pageSize int) ([]Count, error) {
	rows, err := c.FetchPages(ctx, kind.Query(), pages, pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetching %s counts: %w", kind, err)
	}

	counts, dropped := FromRows(kind, rows)
	slog.Info("fetched tree counts",
		"kind", string(kind),
		"rows", len(rows),
		"kept", len(counts),
		"dropped", dropped,
	)
	return counts, nil
}
