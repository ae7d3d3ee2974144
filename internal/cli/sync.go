package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/soda"
	"github.com/evcraddock/nycviz/internal/trees"
)

func newSyncCmd() *cobra.Command {
	var (
		kinds    []string
		pages    int
		pageSize int
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch tree counts and store them as a local snapshot",
		Long: "Fetch tree counts from the census API and replace the stored snapshot of each kind, " +
			"so the dashboard and species server can start with --source db.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]trees.Kind, 0, len(kinds))
			for _, k := range kinds {
				kind, err := trees.ParseKind(k)
				if err != nil {
					return err
				}
				parsed = append(parsed, kind)
			}

			c, err := newSodaClient(parallel)
			if err != nil {
				return err
			}
			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)
			repo := trees.NewRepository(database)

			var snaps []*trees.Snapshot
			for _, kind := range parsed {
				n := pages
				if kind == trees.KindSpeciesHealth && !cmd.Flags().Changed("pages") {
					n = 1
				}
				counts, err := trees.Fetch(cmd.Context(), c, kind, n, pageSize)
				if err != nil {
					return err
				}
				snap, err := repo.ReplaceSnapshot(kind, getAPIURL(), counts)
				if err != nil {
					return fmt.Errorf("storing %s snapshot: %w", kind, err)
				}
				snaps = append(snaps, snap)
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, snaps)
			}
			for _, s := range snaps {
				fmt.Fprintf(out, "Stored %s snapshot #%d: %s rows at %s\n",
					s.Kind, s.ID, formatInt(int64(s.Rows)), s.FetchedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kind",
		[]string{string(trees.KindFull), string(trees.KindSpeciesHealth)}, "snapshot kinds to fetch")
	cmd.Flags().IntVar(&pages, "pages", soda.DefaultPages, "number of API pages to fetch")
	cmd.Flags().IntVar(&pageSize, "page-size", soda.DefaultPageSize, "rows per API page")
	cmd.Flags().IntVar(&parallel, "parallel", soda.DefaultParallel, "API pages to request at once")

	return cmd
}
