package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func (c *Config) normalize() error {
	// Best-effort: local runs keep secrets in a .env file the way the CI
	// workflows export them.
	_ = godotenv.Load()

	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDirectory(); err != nil {
		return err
	}
	c.normalizeWebSearch()
	c.normalizeFirecrawl()
	c.normalizeHomeStars()
	if err := c.normalizeBudget(); err != nil {
		return err
	}
	if err := c.normalizeBatch(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDirectory() error {
	c.Directory.URL = strings.TrimSpace(c.Directory.URL)
	if c.Directory.URL == "" {
		c.Directory.URL = firstEnv("DIRECTORY_URL", "SUPABASE_URL")
	}
	c.Directory.URL = strings.TrimRight(c.Directory.URL, "/")

	c.Directory.APIKey = strings.TrimSpace(c.Directory.APIKey)
	if c.Directory.APIKey == "" {
		c.Directory.APIKey = firstEnv("DIRECTORY_KEY", "SUPABASE_KEY")
	}

	c.Directory.Table = strings.TrimSpace(c.Directory.Table)
	if c.Directory.Table == "" {
		c.Directory.Table = defaultDirectoryTable
	}
	if c.Directory.TimeoutSeconds <= 0 {
		c.Directory.TimeoutSeconds = defaultDirectoryTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeWebSearch() {
	c.WebSearch.APIKey = strings.TrimSpace(c.WebSearch.APIKey)
	if c.WebSearch.APIKey == "" {
		c.WebSearch.APIKey = firstEnv("WEBSEARCH_API_KEY", "ANTHROPIC_API_KEY")
	}
	c.WebSearch.BaseURL = strings.TrimSpace(c.WebSearch.BaseURL)
	if c.WebSearch.BaseURL == "" {
		c.WebSearch.BaseURL = defaultWebSearchBaseURL
	}
	c.WebSearch.Model = strings.TrimSpace(c.WebSearch.Model)
	if c.WebSearch.Model == "" {
		c.WebSearch.Model = defaultWebSearchModel
	}
	if c.WebSearch.MaxTokens <= 0 {
		c.WebSearch.MaxTokens = defaultWebSearchMaxTokens
	}
	if c.WebSearch.TimeoutSeconds <= 0 {
		c.WebSearch.TimeoutSeconds = defaultWebSearchTimeoutSeconds
	}
}

func (c *Config) normalizeFirecrawl() {
	c.Firecrawl.APIKey = strings.TrimSpace(c.Firecrawl.APIKey)
	if c.Firecrawl.APIKey == "" {
		c.Firecrawl.APIKey = firstEnv("FIRECRAWL_API_KEY")
	}
	c.Firecrawl.BaseURL = strings.TrimSpace(c.Firecrawl.BaseURL)
	if c.Firecrawl.BaseURL == "" {
		c.Firecrawl.BaseURL = defaultFirecrawlBaseURL
	}
	if c.Firecrawl.TimeoutSeconds <= 0 {
		c.Firecrawl.TimeoutSeconds = defaultFirecrawlTimeoutSeconds
	}
}

func (c *Config) normalizeHomeStars() {
	c.HomeStars.SearchBaseURL = strings.TrimSpace(c.HomeStars.SearchBaseURL)
	if c.HomeStars.SearchBaseURL == "" {
		c.HomeStars.SearchBaseURL = defaultHomeStarsSearchBaseURL
	}
	if c.HomeStars.TimeoutSeconds <= 0 {
		c.HomeStars.TimeoutSeconds = defaultHomeStarsTimeoutSeconds
	}
}

func (c *Config) normalizeBudget() error {
	if c.Budget.Ceiling <= 0 {
		c.Budget.Ceiling = defaultBudgetCeiling
	}
	if c.Budget.Reserve <= 0 {
		c.Budget.Reserve = defaultBudgetReserve
	}
	c.Budget.Backend = strings.ToLower(strings.TrimSpace(c.Budget.Backend))
	switch c.Budget.Backend {
	case "":
		c.Budget.Backend = defaultBudgetBackend
	case "file", "sqlite":
	default:
		return fmt.Errorf("budget.backend %q is not supported (use \"file\" or \"sqlite\")", c.Budget.Backend)
	}
	if strings.TrimSpace(c.Budget.LedgerPath) != "" {
		expanded, err := expandPath(c.Budget.LedgerPath)
		if err != nil {
			return fmt.Errorf("budget.ledger_path: %w", err)
		}
		c.Budget.LedgerPath = expanded
	}
	return nil
}

func (c *Config) normalizeBatch() error {
	if value := firstEnv("BATCH_NUMBER"); value != "" {
		number, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("BATCH_NUMBER %q is not a number: %w", value, err)
		}
		if number <= 0 {
			return fmt.Errorf("BATCH_NUMBER %q must be positive", value)
		}
		c.Batch.Number = number
	}
	if value := firstEnv("BATCH_SIZE"); value != "" {
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("BATCH_SIZE %q is not a number: %w", value, err)
		}
		if size <= 0 {
			return fmt.Errorf("BATCH_SIZE %q must be positive", value)
		}
		c.Batch.Size = size
	}
	if c.Batch.Number <= 0 {
		c.Batch.Number = defaultBatchNumber
	}
	if c.Batch.Size <= 0 {
		c.Batch.Size = defaultBatchSize
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.Topic = strings.TrimSpace(c.Notifications.Topic)
	if c.Notifications.Topic == "" {
		c.Notifications.Topic = firstEnv("NTFY_TOPIC")
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
