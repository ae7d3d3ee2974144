package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT     NOT NULL,
		source_url TEXT     NOT NULL DEFAULT '',
		row_count  INTEGER  NOT NULL DEFAULT 0,
		fetched_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_kind ON snapshots(kind)`,
	`CREATE TABLE IF NOT EXISTS tree_counts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		species     TEXT    NOT NULL,
		borough     TEXT    NOT NULL DEFAULT '',
		health      TEXT    NOT NULL,
		steward     TEXT    NOT NULL DEFAULT '',
		trees       INTEGER NOT NULL CHECK (trees >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tree_counts_snapshot ON tree_counts(snapshot_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
