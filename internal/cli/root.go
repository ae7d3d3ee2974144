// Package cli defines the cobra command tree for nycviz.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nycviz/internal/db"
	"github.com/evcraddock/nycviz/internal/logging"
)

var (
	flagFormat   string
	flagDB       string
	flagDev      bool
	flagLogLevel string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nycviz",
		Short: "Explore NYC tax-lot and street tree open data",
		Long: "Bin and map PLUTO tax lots, browse street tree health in a dashboard, " +
			"and serve per-species health counts as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagFormat != "text" && flagFormat != "json" {
				return fmt.Errorf("invalid --format %q (text|json)", flagFormat)
			}
			return logging.Setup(logging.Options{
				Dev:    flagDev,
				Level:  flagLogLevel,
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite snapshot database path (default: ~/.nycviz/nycviz.db)")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "human-readable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(
		newPlutoCmd(),
		newDashboardCmd(),
		newSpeciesCmd(),
		newSyncCmd(),
		newTableCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag, the config file
// or the default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = getDBPath()
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
