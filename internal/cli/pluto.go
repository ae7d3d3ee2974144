package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/binning"
	"github.com/evcraddock/nycviz/internal/pluto"
	"github.com/evcraddock/nycviz/internal/stateplane"
)

type plutoOptions struct {
	exportDir  string
	shapefile  string
	landCuts   []float64
	totalCuts  []float64
	how        string
	skipRender bool
}

func newPlutoCmd() *cobra.Command {
	var opts plutoOptions

	cmd := &cobra.Command{
		Use:   "pluto <pluto.csv>",
		Short: "Bin, aggregate and map PLUTO tax lots",
		Long: "Load a PLUTO tax-lot CSV, drop outliers, project State Plane coordinates to " +
			"lon/lat, bin year built and assessed values, print the grouped counts and export " +
			"density images.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("export-dir") {
				opts.exportDir = getExportDir()
			}
			return runPluto(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.exportDir, "export-dir", defaultExportDir, "directory for exported PNG images")
	cmd.Flags().StringVar(&opts.shapefile, "shapefile", "", "also write lots as a point shapefile at this path")
	cmd.Flags().Float64SliceVar(&opts.landCuts, "land-cuts", pluto.DefaultLandCuts, "assessed land value cut points")
	cmd.Flags().Float64SliceVar(&opts.totalCuts, "total-cuts", pluto.DefaultTotalCuts, "assessed total value cut points")
	cmd.Flags().StringVar(&opts.how, "how", "", "override image shading (eq_hist|linear|log)")
	cmd.Flags().BoolVar(&opts.skipRender, "no-images", false, "skip image export")

	return cmd
}

type plutoResult struct {
	Stats    pluto.LoadStats `json:"stats"`
	Report   *pluto.Report   `json:"report"`
	Exported []string        `json:"exported"`
}

func runPluto(out io.Writer, path string, opts plutoOptions) error {
	lots, stats, err := pluto.LoadFile(path)
	if err != nil {
		return err
	}
	lots = pluto.Clean(lots, &stats)
	lots = pluto.Project(lots, stateplane.New(stateplane.NYLongIsland), &stats)
	slog.Info("loaded lots",
		"path", path,
		"read", stats.Read,
		"dropped", stats.Dropped,
		"outliers", stats.Outliers,
		"off_canvas", stats.OffCanvas,
		"kept", len(lots),
	)
	if len(lots) == 0 {
		return fmt.Errorf("no lots left in %s after cleaning", path)
	}

	levels, err := pluto.Classify(lots, pluto.Cuts{Land: opts.landCuts, Total: opts.totalCuts})
	if err != nil {
		return err
	}
	report, err := pluto.Analyze(lots, levels)
	if err != nil {
		return err
	}

	res := plutoResult{Stats: stats, Report: report, Exported: []string{}}
	if !opts.skipRender {
		paths, err := pluto.Render(lots, levels, pluto.RenderOptions{Dir: opts.exportDir, How: opts.how})
		if err != nil {
			return err
		}
		res.Exported = append(res.Exported, paths...)
	}
	if opts.shapefile != "" {
		if err := pluto.WriteShapefile(opts.shapefile, lots, levels); err != nil {
			return err
		}
		res.Exported = append(res.Exported, opts.shapefile)
	}

	if isJSON() {
		return printJSON(out, res)
	}
	return printPlutoReport(out, res)
}

func printPlutoReport(out io.Writer, res plutoResult) error {
	r := res.Report
	fmt.Fprintf(out, "Lots: %s (read %s, dropped %s, outliers %s, off map %s)\n\n",
		formatInt(int64(r.Lots)), formatInt(int64(res.Stats.Read)), formatInt(int64(res.Stats.Dropped)),
		formatInt(int64(res.Stats.Outliers)), formatInt(int64(res.Stats.OffCanvas)))

	if err := printCounts(out, "Lots by decade built", "decade", r.DecadeCounts); err != nil {
		return err
	}
	if err := printCounts(out, "Lots with 9 or fewer floors", "floors", r.LowRiseFloors); err != nil {
		return err
	}

	fmt.Fprintln(out, "Lots at or above a floor count")
	for _, th := range r.Thresholds {
		fmt.Fprintf(out, "  %2s+ floors  %s\n", strconv.FormatFloat(th.Min, 'f', -1, 64), formatInt(int64(th.Count)))
	}
	fmt.Fprintln(out)

	decades := binning.DecadeBins(1850, 2010).Labels()
	cols := make([]string, len(r.FloorsByDecade))
	cells := make([][]int, len(decades))
	for i := range cells {
		cells[i] = make([]int, len(r.FloorsByDecade))
	}
	for j, th := range r.FloorsByDecade {
		cols[j] = strconv.FormatFloat(th.Min, 'f', -1, 64) + "+"
		for i, c := range th.Counts {
			if i < len(cells) {
				cells[i][j] = int(c.Value)
			}
		}
	}
	if err := printMatrix(out, "Tall buildings by decade built", decades, cols, cells); err != nil {
		return err
	}

	if err := printCounts(out, "Land value levels", "level", r.LandLevels); err != nil {
		return err
	}
	if err := printCounts(out, "Total value levels", "level", r.TotalLevels); err != nil {
		return err
	}
	if err := printMatrix(out, "Land value (rows) by total value (columns)",
		pluto.LandLabels, pluto.TotalLabels, r.ValueCrossTab); err != nil {
		return err
	}

	if len(res.Exported) > 0 {
		fmt.Fprintln(out, "Exported:")
		for _, p := range res.Exported {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	return nil
}
