package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"finderhub/internal/budget"
	"finderhub/internal/config"
	"finderhub/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// openLedgerStore builds the configured spend ledger store. The caller owns
// the returned store and must Close it.
func openLedgerStore(cfg *config.Config) (budget.Store, error) {
	path := cfg.ResolvedLedgerPath()
	switch cfg.Budget.Backend {
	case "sqlite":
		store, err := budget.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("open spend ledger %s: %w", path, err)
		}
		return store, nil
	default:
		store, err := budget.NewFileStore(path, budget.FileStoreOptions{Locking: cfg.Budget.Locking})
		if err != nil {
			return nil, fmt.Errorf("open spend ledger %s: %w", path, err)
		}
		return store, nil
	}
}

func (c *commandContext) withLedger(logger *slog.Logger, fn func(*budget.Ledger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := openLedgerStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(budget.Open(store, cfg.Budget.Ceiling, logger))
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
