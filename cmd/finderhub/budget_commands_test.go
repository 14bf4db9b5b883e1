package main

import (
	"testing"

	"finderhub/internal/budget"
	"finderhub/internal/config"
	"finderhub/internal/logging"
)

func seedLedger(t *testing.T, configPath string, used int64) {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	store, err := budget.NewFileStore(cfg.ResolvedLedgerPath(), budget.FileStoreOptions{Locking: false})
	if err != nil {
		t.Fatalf("open ledger store: %v", err)
	}
	defer store.Close()
	ledger := budget.Open(store, cfg.Budget.Ceiling, logging.NewNop())
	ledger.Add(used)
}

func TestBudgetShow(t *testing.T) {
	env := setupCLITestEnv(t)
	seedLedger(t, env.configPath, 42)

	out, _, err := runCLI(t, []string{"budget", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("budget show: %v", err)
	}
	requireContains(t, out, "42 of 100 credits")
	requireContains(t, out, "Remaining")
	requireContains(t, out, "58")
}

func TestBudgetResetRequiresForce(t *testing.T) {
	env := setupCLITestEnv(t)
	seedLedger(t, env.configPath, 10)

	if _, _, err := runCLI(t, []string{"budget", "reset"}, env.configPath); err == nil {
		t.Fatal("expected reset without --force to fail")
	}

	out, _, err := runCLI(t, []string{"budget", "reset", "--force"}, env.configPath)
	if err != nil {
		t.Fatalf("budget reset --force: %v", err)
	}
	requireContains(t, out, "Spend ledger reset")

	out, _, err = runCLI(t, []string{"budget", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("budget show after reset: %v", err)
	}
	requireContains(t, out, "0 of 100 credits")
}
