// Package sqlite provides a deduplication index persisted in a SQLite
// database, so hashes survive across runs.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.DedupIndex = (*Index)(nil)

// Index stores content hashes in a SQLite database on disk.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex opens (or creates) the index database under stateDir.
func NewIndex(stateDir string) (*Index, error) {
	if stateDir == "" {
		return nil, fmt.Errorf("state directory is required")
	}

	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, "dedup.db")

	// WAL mode keeps concurrent worker inserts from blocking each other.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS hashes (
		hash TEXT PRIMARY KEY,
		added_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Index{db: db, path: dbPath}, nil
}

// Add records a hash and reports whether it was seen for the first
// time, across this run and every previous one. INSERT OR IGNORE makes
// the check-and-insert atomic at the database level.
func (i *Index) Add(hash string) (bool, error) {
	res, err := i.db.Exec("INSERT OR IGNORE INTO hashes (hash) VALUES (?)", hash)
	if err != nil {
		return false, fmt.Errorf("inserting hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert result: %w", err)
	}
	return n > 0, nil
}

// Len returns the number of distinct hashes recorded.
func (i *Index) Len() int {
	var n int
	if err := i.db.QueryRow("SELECT COUNT(*) FROM hashes").Scan(&n); err != nil {
		return 0
	}
	return n
}

// Path returns the database file location.
func (i *Index) Path() string {
	return i.path
}

// Close closes the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}
