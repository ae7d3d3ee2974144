package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/soda"
	"github.com/evcraddock/nycviz/internal/trees"
)

func newTableCmd() *cobra.Command {
	var (
		species string
		borough string
		src     sourceOptions
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the raw tree counts for a species and borough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := loadCounts(cmd.Context(), trees.KindFull, src)
			if err != nil {
				return err
			}
			rows := trees.NewTable(counts).Filter(species, borough).Rows()

			if isJSON() {
				if rows == nil {
					rows = []trees.Count{}
				}
				return printJSON(cmd.OutOrStdout(), rows)
			}
			return printTreeCounts(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVar(&species, "species", trees.DefaultSpecies, "species common name")
	cmd.Flags().StringVar(&borough, "borough", trees.DefaultBorough, "borough name")
	src.addFlags(cmd, soda.DefaultPages)

	return cmd
}
