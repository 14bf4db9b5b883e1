package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"finderhub/internal/budget"
	"finderhub/internal/config"
	"finderhub/internal/directory"
	"finderhub/internal/enrich"
	"finderhub/internal/notifications"
	"finderhub/internal/runhistory"
	"finderhub/internal/services/firecrawl"
	"finderhub/internal/services/homestars"
	"finderhub/internal/services/websearch"
)

// jobSpec declares one enrichment subcommand. Only metered jobs consume paid
// credits and open the spend ledger; the rest run ungated.
type jobSpec struct {
	use     string
	short   string
	metered bool
	build   func(*config.Config) (enrich.Enricher, error)
}

func enrichJobs() []jobSpec {
	return []jobSpec{
		{
			use:   "licenses",
			short: "Fill in ESA and ECRA licensing data via web search",
			build: func(cfg *config.Config) (enrich.Enricher, error) {
				search, err := newSearchClient(cfg)
				if err != nil {
					return nil, err
				}
				return enrich.NewLicenseEnricher(search), nil
			},
		},
		{
			use:   "ratings",
			short: "Fill in multi-platform review ratings via web search",
			build: func(cfg *config.Config) (enrich.Enricher, error) {
				search, err := newSearchClient(cfg)
				if err != nil {
					return nil, err
				}
				return enrich.NewRatingsEnricher(search), nil
			},
		},
		{
			use:   "homestars",
			short: "Scrape HomeStars listings directly",
			build: func(cfg *config.Config) (enrich.Enricher, error) {
				scraper := homestars.NewScraper(homestars.Config{
					SearchBaseURL:  cfg.HomeStars.SearchBaseURL,
					TimeoutSeconds: cfg.HomeStars.TimeoutSeconds,
				})
				return enrich.NewHomeStarsEnricher(scraper), nil
			},
		},
		{
			use:     "firecrawl",
			short:   "Scrape Yelp, HomeStars, and BBB through the Firecrawl API",
			metered: true,
			build: func(cfg *config.Config) (enrich.Enricher, error) {
				client := firecrawl.NewClient(firecrawl.Config{
					APIKey:         cfg.Firecrawl.APIKey,
					BaseURL:        cfg.Firecrawl.BaseURL,
					TimeoutSeconds: cfg.Firecrawl.TimeoutSeconds,
				})
				return enrich.NewFirecrawlEnricher(client), nil
			},
		},
	}
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var batchNumber int
	var batchSize int

	enrichCmd := &cobra.Command{
		Use:   "enrich",
		Short: "Run an enrichment batch against the provider directory",
	}

	enrichCmd.PersistentFlags().IntVar(&batchNumber, "batch", 0, "Batch number to process (overrides config)")
	enrichCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0, "Providers per batch (overrides config)")

	for _, job := range enrichJobs() {
		job := job
		enrichCmd.AddCommand(&cobra.Command{
			Use:   job.use,
			Short: job.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEnrichment(cmd, ctx, batchNumber, batchSize, job)
			},
		})
	}

	return enrichCmd
}

func newSearchClient(cfg *config.Config) (*websearch.Client, error) {
	if cfg.WebSearch.APIKey == "" {
		return nil, fmt.Errorf("web search API key is not configured (set WEBSEARCH_API_KEY or websearch.api_key)")
	}
	return websearch.NewClient(websearch.Config{
		APIKey:         cfg.WebSearch.APIKey,
		BaseURL:        cfg.WebSearch.BaseURL,
		Model:          cfg.WebSearch.Model,
		MaxTokens:      cfg.WebSearch.MaxTokens,
		TimeoutSeconds: cfg.WebSearch.TimeoutSeconds,
	}), nil
}

func runEnrichment(cmd *cobra.Command, ctx *commandContext, batchNumber, batchSize int, job jobSpec) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := ctx.newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	enricher, err := job.build(cfg)
	if err != nil {
		return err
	}

	client, err := directory.NewClient(directory.Config{
		BaseURL:        cfg.Directory.URL,
		APIKey:         cfg.Directory.APIKey,
		Table:          cfg.Directory.Table,
		TimeoutSeconds: cfg.Directory.TimeoutSeconds,
	})
	if err != nil {
		return err
	}

	// The credit ledger gates metered jobs only; web-search and direct
	// scraping spend nothing and must not stop when firecrawl credits run
	// out (or contend on the ledger lock).
	var ledger *budget.Ledger
	if job.metered {
		store, err := openLedgerStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		ledger = budget.Open(store, cfg.Budget.Ceiling, logger)
	}

	history, err := runhistory.Open(cfg.RunHistoryPath())
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer history.Close()

	if batchNumber <= 0 {
		batchNumber = cfg.Batch.Number
	}
	if batchSize <= 0 {
		batchSize = cfg.Batch.Size
	}

	runner := &enrich.Runner{
		Directory:   client,
		Ledger:      ledger,
		Reserve:     cfg.Budget.Reserve,
		History:     history,
		Notifier:    notifications.NewService(cfg),
		Pacer:       enrich.NewPacer(enrich.PacerOptions{}),
		Logger:      logger,
		BatchNumber: batchNumber,
		BatchSize:   batchSize,
	}

	report, runErr := runner.Run(signalCtx, enricher)
	if report != nil {
		printRunReport(cmd, report, ledger)
	}
	return runErr
}

func printRunReport(cmd *cobra.Command, report *enrich.Report, ledger *budget.Ledger) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader(fmt.Sprintf("%s batch %d", report.Job, report.BatchNumber), colorize) {
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out, renderStatusLine("Processed", statusInfo, fmt.Sprintf("%d of %d", report.Processed, report.BatchSize), colorize))
	fmt.Fprintln(out, renderStatusLine("Updated", statusOK, fmt.Sprintf("%d", report.Updated), colorize))
	fmt.Fprintln(out, renderStatusLine("Not found", statusInfo, fmt.Sprintf("%d", report.NotFound), colorize))

	errKind := statusOK
	if report.Errors > 0 {
		errKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Errors", errKind, fmt.Sprintf("%d", report.Errors), colorize))
	if ledger != nil {
		fmt.Fprintln(out, renderStatusLine("Spend", statusInfo, fmt.Sprintf("%d credits (%d of %d used)", report.Spend, ledger.Used(), ledger.Ceiling()), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Duration", statusInfo, report.Duration().Round(time.Second).String(), colorize))

	if report.BudgetStopped {
		fmt.Fprintln(out, renderStatusLine("Budget", statusError, "credit ceiling reached; approve more credits before continuing", colorize))
	}
}
