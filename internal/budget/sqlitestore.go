package budget

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the counter in a one-row SQLite table. It is the
// transactional drop-in for deployments where more than one writer process
// may touch the ledger; SQLite's own locking serializes the writes.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed ledger store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("ledger database path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS spend_ledger (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            used INTEGER NOT NULL
        )`,
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Load reads the counter row. A missing row starts fresh; query failures or
// negative values default to zero without error.
func (s *SQLiteStore) Load() LoadResult {
	var used int64
	err := s.db.QueryRow(`SELECT used FROM spend_ledger WHERE id = 1`).Scan(&used)
	if errors.Is(err, sql.ErrNoRows) {
		return LoadResult{Used: 0, Origin: OriginFresh}
	}
	if err != nil {
		return LoadResult{Used: 0, Origin: OriginDefaulted, Err: err}
	}
	if used < 0 {
		return LoadResult{Used: 0, Origin: OriginDefaulted, Err: fmt.Errorf("negative ledger value %d", used)}
	}
	return LoadResult{Used: used, Origin: OriginPersisted}
}

// Save upserts the counter row.
func (s *SQLiteStore) Save(used int64) error {
	_, err := s.db.Exec(
		`INSERT INTO spend_ledger (id, used) VALUES (1, ?)
         ON CONFLICT (id) DO UPDATE SET used = excluded.used`,
		used,
	)
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Reset deletes the counter row.
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM spend_ledger WHERE id = 1`); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	return nil
}

// Location returns the ledger database path.
func (s *SQLiteStore) Location() string { return s.path }

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
