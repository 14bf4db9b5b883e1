package main

import (
	"context"
	"strings"
	"testing"

	"finderhub/internal/config"
	"finderhub/internal/runhistory"
)

func seedRun(t *testing.T, configPath, job string) {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	store, err := runhistory.Open(cfg.RunHistoryPath())
	if err != nil {
		t.Fatalf("open run history: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	run, err := store.StartRun(ctx, job, 1, 50)
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	totals := runhistory.Totals{Processed: 50, Updated: 30, NotFound: 18, Errors: 2, Spend: 12}
	if _, err := store.FinishRun(ctx, run.ID, totals, ""); err != nil {
		t.Fatalf("finish run: %v", err)
	}
}

func TestRunsListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"runs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}

func TestRunsList(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRun(t, env.configPath, "licenses")
	seedRun(t, env.configPath, "ratings")

	out, _, err := runCLI(t, []string{"runs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, "licenses")
	requireContains(t, out, "ratings")

	out, _, err = runCLI(t, []string{"runs", "list", "--job", "licenses"}, env.configPath)
	if err != nil {
		t.Fatalf("runs list --job: %v", err)
	}
	requireContains(t, out, "licenses")
	if strings.Contains(out, "ratings") {
		t.Fatalf("job filter leaked other jobs:\n%s", out)
	}
}
