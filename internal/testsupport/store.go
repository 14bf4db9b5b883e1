package testsupport

import (
	"testing"

	"finderhub/internal/budget"
	"finderhub/internal/config"
	"finderhub/internal/logging"
	"finderhub/internal/runhistory"
)

// MustOpenLedger opens a file-backed spend ledger for tests and registers
// cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *budget.Ledger {
	t.Helper()

	store, err := budget.NewFileStore(cfg.ResolvedLedgerPath(), budget.FileStoreOptions{Locking: cfg.Budget.Locking})
	if err != nil {
		t.Fatalf("open ledger store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return budget.Open(store, cfg.Budget.Ceiling, logging.NewNop())
}

// MustOpenHistory opens a runhistory.Store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *runhistory.Store {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := runhistory.Open(cfg.RunHistoryPath())
	if err != nil {
		t.Fatalf("open run history: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
