package trees

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoSnapshot is returned when no snapshot of a kind has been stored.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot describes one stored fetch.
type Snapshot struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	SourceURL string    `json:"source_url"`
	Rows      int       `json:"rows"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Repository stores and loads count snapshots.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a snapshot repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertCountSQL = `INSERT INTO tree_counts
	(snapshot_id, species, borough, health, steward, trees)
	VALUES (?, ?, ?, ?, ?, ?)`

// ReplaceSnapshot stores counts as the only snapshot of kind, replacing
// any earlier one, in a single transaction.
func (r *Repository) ReplaceSnapshot(kind Kind, sourceURL string, counts []Count) (snap *Snapshot, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	if _, err := tx.Exec("DELETE FROM snapshots WHERE kind = ?", string(kind)); err != nil {
		return nil, fmt.Errorf("deleting old snapshot: %w", err)
	}

	fetchedAt := time.Now().UTC().Truncate(time.Second)
	result, err := tx.Exec(
		"INSERT INTO snapshots (kind, source_url, row_count, fetched_at) VALUES (?, ?, ?, ?)",
		string(kind), sourceURL, len(counts), fetchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting snapshot id: %w", err)
	}

	stmt, err := tx.Prepare(insertCountSQL)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing statement: %w", closeErr)
		}
	}()

	for _, c := range counts {
		if _, err := stmt.Exec(id, c.Species, c.Borough, c.Health, c.Steward, c.Trees); err != nil {
			return nil, fmt.Errorf("inserting count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	return &Snapshot{
		ID:        id,
		Kind:      kind,
		SourceURL: sourceURL,
		Rows:      len(counts),
		FetchedAt: fetchedAt,
	}, nil
}

// LatestSnapshot returns the stored snapshot of kind.
func (r *Repository) LatestSnapshot(kind Kind) (*Snapshot, error) {
	row := r.db.QueryRow(
		"SELECT id, kind, source_url, row_count, fetched_at FROM snapshots WHERE kind = ? ORDER BY id DESC LIMIT 1",
		string(kind),
	)

	var s Snapshot
	var k string
	err := row.Scan(&s.ID, &k, &s.SourceURL, &s.Rows, &s.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %s", ErrNoSnapshot, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	s.Kind = Kind(k)
	return &s, nil
}

// LoadSnapshot returns the counts of the stored snapshot of kind in the
// order they were fetched.
func (r *Repository) LoadSnapshot(kind Kind) (counts []Count, snap *Snapshot, err error) {
	snap, err = r.LatestSnapshot(kind)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(
		"SELECT species, borough, health, steward, trees FROM tree_counts WHERE snapshot_id = ? ORDER BY id",
		snap.ID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("listing counts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Species, &c.Borough, &c.Health, &c.Steward, &c.Trees); err != nil {
			return nil, nil, fmt.Errorf("scanning count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating counts: %w", err)
	}

	return counts, snap, nil
}
