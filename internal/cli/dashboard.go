package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/soda"
	"github.com/evcraddock/nycviz/internal/trees"
	"github.com/evcraddock/nycviz/internal/web"
)

func newDashboardCmd() *cobra.Command {
	var (
		port int
		src  sourceOptions
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the tree health dashboard",
		Long: "Fetch street tree counts per species, borough, health and stewardship once, " +
			"then serve a dashboard with species and borough dropdowns.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			counts, err := loadCounts(ctx, trees.KindFull, src)
			if err != nil {
				return err
			}
			trees.NormalizeStewards(counts)

			srv, err := web.NewServer(trees.NewTable(counts))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8050, "port to listen on")
	src.addFlags(cmd, soda.DefaultPages)

	return cmd
}
