package testsupport

import (
	"path/filepath"
	"testing"

	"finderhub/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Directory.URL = "https://directory.test"
	cfgVal.Directory.APIKey = "test"
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Budget.LedgerPath = filepath.Join(base, "data", "credits_used.txt")
	cfgVal.Budget.Locking = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDirectoryEndpoint points the test config at a live test server.
func WithDirectoryEndpoint(url, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Directory.URL = url
		b.cfg.Directory.APIKey = key
	}
}

// WithBudget overrides the ceiling and reserve on the test config.
func WithBudget(ceiling, reserve int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Budget.Ceiling = ceiling
		b.cfg.Budget.Reserve = reserve
	}
}

// WithBatch overrides the batch window on the test config.
func WithBatch(number, size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.Number = number
		b.cfg.Batch.Size = size
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
