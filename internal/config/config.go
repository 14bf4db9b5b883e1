package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Directory contains connection settings for the provider directory's
// PostgREST endpoint.
type Directory struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	Table          string `toml:"table"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// WebSearch contains connection settings for the web-search LLM endpoint.
type WebSearch struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	MaxTokens      int    `toml:"max_tokens"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Firecrawl contains connection settings for the paid scraping API.
type Firecrawl struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// HomeStars contains settings for the direct HomeStars scraper.
type HomeStars struct {
	SearchBaseURL  string `toml:"search_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Budget contains the spend ledger settings. Ceiling is the hard credit
// limit; Reserve is how many credits a job wants available before it starts
// a provider.
type Budget struct {
	Ceiling    int64  `toml:"ceiling"`
	Reserve    int64  `toml:"reserve"`
	LedgerPath string `toml:"ledger_path"`
	Backend    string `toml:"backend"`
	Locking    bool   `toml:"locking"`
}

// Batch selects which slice of the directory a run processes.
type Batch struct {
	Number int `toml:"number"`
	Size   int `toml:"size"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	Topic          string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for FinderHub.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Directory: provider directory REST endpoint and credentials
//   - WebSearch: LLM web-search connection settings
//   - Firecrawl: paid scraping API connection settings
//   - HomeStars: direct scraper settings
//   - Budget: spend ledger ceiling, reserve, and backend
//   - Batch: batch number and size
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Directory     Directory     `toml:"directory"`
	WebSearch     WebSearch     `toml:"websearch"`
	Firecrawl     Firecrawl     `toml:"firecrawl"`
	HomeStars     HomeStars     `toml:"homestars"`
	Budget        Budget        `toml:"budget"`
	Batch         Batch         `toml:"batch"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/finderhub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("finderhub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ResolvedLedgerPath returns the spend ledger location, defaulting under
// the data directory when unset.
func (c *Config) ResolvedLedgerPath() string {
	if strings.TrimSpace(c.Budget.LedgerPath) != "" {
		return c.Budget.LedgerPath
	}
	if c.Budget.Backend == "sqlite" {
		return filepath.Join(c.Paths.DataDir, "spend_ledger.db")
	}
	return filepath.Join(c.Paths.DataDir, "credits_used.txt")
}

// RunHistoryPath returns the run history database location.
func (c *Config) RunHistoryPath() string {
	return filepath.Join(c.Paths.DataDir, "runs.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
