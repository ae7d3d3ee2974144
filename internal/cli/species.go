package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/client"
	"github.com/evcraddock/nycviz/internal/speciesapi"
	"github.com/evcraddock/nycviz/internal/trees"
)

func newSpeciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Serve or query per-species tree health counts",
	}
	cmd.AddCommand(newSpeciesServeCmd(), newSpeciesLookupCmd(), newSpeciesListCmd())
	return cmd
}

func newSpeciesServeCmd() *cobra.Command {
	var (
		addr    string
		origins []string
		src     sourceOptions
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /species/{name}",
		Long: "Fetch tree counts per species and health once, then serve them as JSON. " +
			"Unknown species return an empty object.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			counts, err := loadCounts(ctx, trees.KindSpeciesHealth, src)
			if err != nil {
				return err
			}

			srv := speciesapi.NewServer(trees.NewTable(counts), speciesapi.Options{AllowedOrigins: origins})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "address to listen on")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins (default any)")
	src.addFlags(cmd, 1)

	return cmd
}

func newSpeciesLookupCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up health counts for a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = getSpeciesURL()
			}
			counts, err := client.New(server).SpeciesHealth(args[0])
			if err != nil {
				return fmt.Errorf("looking up %q: %w", args[0], err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), counts)
			}
			return printHealth(cmd.OutOrStdout(), args[0], counts)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "species API base URL")

	return cmd
}

func newSpeciesListCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the species a server knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = getSpeciesURL()
			}
			names, err := client.New(server).ListSpecies()
			if err != nil {
				return fmt.Errorf("listing species: %w", err)
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, names)
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "species API base URL")

	return cmd
}
