package config

const (
	defaultDataDir = "~/.local/share/finderhub"
	defaultLogDir  = "~/.local/share/finderhub/logs"

	defaultDirectoryTable          = "providers"
	defaultDirectoryTimeoutSeconds = 30

	defaultWebSearchBaseURL        = "https://api.anthropic.com/v1/messages"
	defaultWebSearchModel          = "claude-sonnet-4-20250514"
	defaultWebSearchMaxTokens      = 1024
	defaultWebSearchTimeoutSeconds = 120

	defaultFirecrawlBaseURL        = "https://api.firecrawl.dev/v2"
	defaultFirecrawlTimeoutSeconds = 60

	defaultHomeStarsSearchBaseURL  = "https://www.google.com/search"
	defaultHomeStarsTimeoutSeconds = 15

	defaultBudgetCeiling = 2900
	defaultBudgetReserve = 3
	defaultBudgetBackend = "file"

	defaultBatchNumber = 1
	defaultBatchSize   = 100

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Directory: Directory{
			Table:          defaultDirectoryTable,
			TimeoutSeconds: defaultDirectoryTimeoutSeconds,
		},
		WebSearch: WebSearch{
			BaseURL:        defaultWebSearchBaseURL,
			Model:          defaultWebSearchModel,
			MaxTokens:      defaultWebSearchMaxTokens,
			TimeoutSeconds: defaultWebSearchTimeoutSeconds,
		},
		Firecrawl: Firecrawl{
			BaseURL:        defaultFirecrawlBaseURL,
			TimeoutSeconds: defaultFirecrawlTimeoutSeconds,
		},
		HomeStars: HomeStars{
			SearchBaseURL:  defaultHomeStarsSearchBaseURL,
			TimeoutSeconds: defaultHomeStarsTimeoutSeconds,
		},
		Budget: Budget{
			Ceiling: defaultBudgetCeiling,
			Reserve: defaultBudgetReserve,
			Backend: defaultBudgetBackend,
			Locking: true,
		},
		Batch: Batch{
			Number: defaultBatchNumber,
			Size:   defaultBatchSize,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
