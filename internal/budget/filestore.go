package budget

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// ErrLedgerLocked indicates another process holds the spend ledger lock.
var ErrLedgerLocked = errors.New("spend ledger is locked by another process")

// FileStore persists the counter as a single integer in a text file. Writes
// are plain last-write-wins; the optional advisory lock serializes whole
// processes, not individual writes, and is held from open until Close.
type FileStore struct {
	path string
	lock *flock.Flock
}

// FileStoreOptions controls file store construction.
type FileStoreOptions struct {
	// Locking acquires an advisory lock next to the ledger file, making the
	// single-writer assumption explicit. Opening fails fast when another
	// process already holds it.
	Locking bool
}

// NewFileStore opens a file-backed ledger store at path.
func NewFileStore(path string, opts FileStoreOptions) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("ledger path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	store := &FileStore{path: path}
	if opts.Locking {
		store.lock = flock.New(path + ".lock")
		acquired, err := store.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire ledger lock: %w", err)
		}
		if !acquired {
			return nil, fmt.Errorf("%w: %s", ErrLedgerLocked, store.lock.Path())
		}
	}
	return store, nil
}

// Load reads the counter. Missing files start fresh; unreadable or
// non-numeric content defaults to zero without error.
func (s *FileStore) Load() LoadResult {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{Used: 0, Origin: OriginFresh}
		}
		return LoadResult{Used: 0, Origin: OriginDefaulted, Err: err}
	}

	value, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || value < 0 {
		if err == nil {
			err = fmt.Errorf("negative ledger value %d", value)
		}
		return LoadResult{Used: 0, Origin: OriginDefaulted, Err: err}
	}
	return LoadResult{Used: value, Origin: OriginPersisted}
}

// Save writes the counter value.
func (s *FileStore) Save(used int64) error {
	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(used, 10)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// Reset deletes the ledger file.
func (s *FileStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove ledger: %w", err)
	}
	return nil
}

// Location returns the ledger file path.
func (s *FileStore) Location() string { return s.path }

// Close releases the advisory lock when one is held.
func (s *FileStore) Close() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}
