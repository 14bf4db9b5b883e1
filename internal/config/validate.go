package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDirectory(); err != nil {
		return err
	}
	if err := c.validateBudget(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := ensurePositiveMap(map[string]int{
		"directory.timeout_seconds":     c.Directory.TimeoutSeconds,
		"websearch.timeout_seconds":     c.WebSearch.TimeoutSeconds,
		"websearch.max_tokens":          c.WebSearch.MaxTokens,
		"firecrawl.timeout_seconds":     c.Firecrawl.TimeoutSeconds,
		"homestars.timeout_seconds":     c.HomeStars.TimeoutSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDirectory() error {
	if c.Directory.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/finderhub/config.toml"
		}
		return fmt.Errorf("directory.url is required. Set DIRECTORY_URL env var or edit %s (create with 'finderhub config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Directory.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("directory.url %q is not a valid URL", c.Directory.URL)
	}
	if c.Directory.APIKey == "" {
		return errors.New("directory.api_key is required. Set DIRECTORY_KEY env var or edit the config file")
	}
	if strings.TrimSpace(c.Directory.Table) == "" {
		return errors.New("directory.table must be set")
	}
	return nil
}

func (c *Config) validateBudget() error {
	if c.Budget.Ceiling <= 0 {
		return errors.New("budget.ceiling must be positive")
	}
	if c.Budget.Reserve <= 0 {
		return errors.New("budget.reserve must be positive")
	}
	if c.Budget.Reserve > c.Budget.Ceiling {
		return errors.New("budget.reserve must not exceed budget.ceiling")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Number < 1 {
		return errors.New("batch.number must be >= 1")
	}
	if c.Batch.Size < 1 {
		return errors.New("batch.size must be >= 1")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
