// store.go
//
// Run-summary persistence. Each completed run appends one row carrying
// the headline numbers plus the full snapshot JSON, so later analysis can
// recover anything the columns drop.

package report

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"main/utils"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	taken_at_ns   INTEGER NOT NULL,
	received      INTEGER NOT NULL,
	processed     INTEGER NOT NULL,
	dropped       INTEGER NOT NULL,
	parse_errors  INTEGER NOT NULL,
	sequence_gaps INTEGER NOT NULL,
	queue_full    INTEGER NOT NULL,
	e2e_min_ns    INTEGER NOT NULL,
	e2e_p50_ns    INTEGER NOT NULL,
	e2e_p99_ns    INTEGER NOT NULL,
	e2e_p999_ns   INTEGER NOT NULL,
	e2e_p9999_ns  INTEGER NOT NULL,
	e2e_max_ns    INTEGER NOT NULL,
	e2e_mean_ns   INTEGER NOT NULL,
	snapshot_json TEXT    NOT NULL
);`

// Store appends run summaries to a sqlite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createRunsTable); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveRun appends one snapshot row.
func (s *Store) SaveRun(snap Snapshot) error {
	js, err := snap.JSON()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO runs (
		taken_at_ns, received, processed, dropped, parse_errors,
		sequence_gaps, queue_full,
		e2e_min_ns, e2e_p50_ns, e2e_p99_ns, e2e_p999_ns, e2e_p9999_ns,
		e2e_max_ns, e2e_mean_ns, snapshot_json
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		int64(snap.TakenAtNs), int64(snap.Received), int64(snap.Processed),
		int64(snap.Dropped), int64(snap.ParseErrors), int64(snap.SequenceGaps),
		int64(snap.QueueFull),
		int64(snap.EndToEnd.Min), int64(snap.EndToEnd.P50), int64(snap.EndToEnd.P99),
		int64(snap.EndToEnd.P999), int64(snap.EndToEnd.P9999),
		int64(snap.EndToEnd.Max), int64(snap.EndToEnd.Mean),
		utils.B2s(js),
	)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
