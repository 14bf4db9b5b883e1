package runhistory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound indicates the requested run does not exist.
var ErrRunNotFound = errors.New("run not found")

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run history database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("run history database path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create run history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Location returns the database path.
func (s *Store) Location() string { return s.path }

// StartRun records the beginning of a batch run and returns it.
func (s *Store) StartRun(ctx context.Context, job string, batchNumber, batchSize int) (*Run, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (token, job, batch_number, batch_size, started_at)
         VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(),
		job,
		batchNumber,
		batchSize,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// FinishRun closes out a run with its final counters. An empty note stores
// NULL.
func (s *Store) FinishRun(ctx context.Context, id int64, totals Totals, note string) (*Run, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET finished_at = ?, processed = ?, updated = ?, not_found = ?, errors = ?, spend = ?, note = ?
         WHERE id = ?`,
		now.Format(time.RFC3339Nano),
		totals.Processed,
		totals.Updated,
		totals.NotFound,
		totals.Errors,
		totals.Spend,
		nullableString(note),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a single run.
func (s *Store) GetByID(ctx context.Context, id int64) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// Recent returns the most recently started runs, newest first. A limit of
// zero or less means all runs.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	query := selectRuns + " ORDER BY started_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RecentForJob returns the most recently started runs of one job, newest
// first.
func (s *Store) RecentForJob(ctx context.Context, job string, limit int) ([]*Run, error) {
	query := selectRuns + " WHERE job = ? ORDER BY started_at DESC, id DESC"
	args := []any{job}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs for job: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

const selectRuns = `SELECT id, token, job, batch_number, batch_size, started_at, finished_at,
    processed, updated, not_found, errors, spend, note
    FROM runs`

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*Run, error) {
	var (
		run        Run
		startedAt  string
		finishedAt sql.NullString
		note       sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&run.Token,
		&run.Job,
		&run.BatchNumber,
		&run.BatchSize,
		&startedAt,
		&finishedAt,
		&run.Processed,
		&run.Updated,
		&run.NotFound,
		&run.Errors,
		&run.Spend,
		&note,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid {
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		run.FinishedAt = &parsed
	}
	run.Note = note.String

	return &run, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
