package enrich

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"finderhub/internal/budget"
	"finderhub/internal/directory"
	"finderhub/internal/logging"
	"finderhub/internal/notifications"
	"finderhub/internal/runhistory"
	"finderhub/internal/services"
)

// Report summarizes one batch run.
type Report struct {
	Job           string
	BatchNumber   int
	BatchSize     int
	Processed     int
	Updated       int
	NotFound      int
	Errors        int
	Spend         int64
	BudgetStopped bool
	Started       time.Time
	Finished      time.Time
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r == nil || r.Finished.Before(r.Started) {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

func (r *Report) totals() runhistory.Totals {
	return runhistory.Totals{
		Processed: r.Processed,
		Updated:   r.Updated,
		NotFound:  r.NotFound,
		Errors:    r.Errors,
		Spend:     r.Spend,
	}
}

// Runner executes an enrichment job over one batch of providers. Ledger,
// History, Notifier, and Pacer are all optional; a nil Ledger means the job
// spends nothing and is never budget-gated.
type Runner struct {
	Directory   *directory.Client
	Ledger      *budget.Ledger
	Reserve     int64
	History     *runhistory.Store
	Notifier    notifications.Service
	Pacer       *Pacer
	Logger      *slog.Logger
	BatchNumber int
	BatchSize   int
}

// Run fetches the job's batch and enriches each provider in order.
//
// Row-level errors are counted and skipped; fatal errors (configuration,
// validation) abort the run. Running out of budget is a clean stop, not an
// error: the report says so and the caller exits zero.
func (r *Runner) Run(ctx context.Context, job Enricher) (*Report, error) {
	logger := r.logger()
	ctx = services.WithJob(ctx, job.Name())
	logger = logger.With(slog.String(logging.FieldJob, job.Name()))

	report := &Report{
		Job:         job.Name(),
		BatchNumber: r.BatchNumber,
		BatchSize:   r.BatchSize,
		Started:     time.Now().UTC(),
	}

	query := job.Query()
	query.BatchNumber = r.BatchNumber
	query.BatchSize = r.BatchSize

	providers, err := r.Directory.FetchBatch(ctx, query)
	if err != nil {
		report.Finished = time.Now().UTC()
		r.notifyFailed(ctx, report, err)
		return report, err
	}
	if len(providers) == 0 {
		logger.Info("no providers left in batch",
			slog.Int("batch_number", r.BatchNumber),
			slog.Int("batch_size", r.BatchSize))
		report.Finished = time.Now().UTC()
		return report, nil
	}

	logger.Info("batch fetched",
		slog.String(logging.FieldEventType, "run_start"),
		slog.Int("batch_number", r.BatchNumber),
		slog.Int("providers", len(providers)))

	run := r.startHistory(ctx, logger, job.Name())
	if run != nil {
		ctx = services.WithRun(ctx, run.Token)
		logger = logger.With(slog.String(logging.FieldRunID, run.Token))
	}
	r.notify(ctx, logger, notifications.EventRunStarted, notifications.Payload{
		"job":   job.Name(),
		"batch": strconv.Itoa(r.BatchNumber),
		"count": strconv.Itoa(len(providers)),
	})

	var runErr error
	for i, provider := range providers {
		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}
		if r.Ledger != nil && !r.Ledger.CanSpend(r.reserve()) {
			report.BudgetStopped = true
			logger.Warn("credit budget exhausted, stopping run",
				logging.Error(services.ErrBudgetExhausted),
				slog.String(logging.FieldEventType, "budget_stop"),
				slog.Int64("used", r.Ledger.Used()),
				slog.Int64("ceiling", r.Ledger.Ceiling()),
				slog.String(logging.FieldImpact, "remaining providers are left for a later run"))
			r.notify(ctx, logger, notifications.EventBudgetExhausted, notifications.Payload{
				"job":     job.Name(),
				"used":    strconv.FormatInt(r.Ledger.Used(), 10),
				"ceiling": strconv.FormatInt(r.Ledger.Ceiling(), 10),
			})
			break
		}

		rowLogger := logger.With(slog.String(logging.FieldProviderID, provider.ID))
		outcome, enrichErr := job.Enrich(services.WithProvider(ctx, provider.ID), provider)

		if outcome.Spend > 0 && r.Ledger != nil {
			r.Ledger.Add(outcome.Spend)
			report.Spend += outcome.Spend
		}

		if enrichErr != nil {
			if services.IsFatal(enrichErr) {
				runErr = enrichErr
				break
			}
			report.Processed++
			report.Errors++
			rowLogger.Warn("enrich failed, skipping provider",
				logging.Error(enrichErr),
				slog.String(logging.FieldErrorHint, "row is retried on the next run"))
			if waitErr := r.pace(ctx, i, len(providers)); waitErr != nil {
				runErr = waitErr
				break
			}
			continue
		}

		report.Processed++
		if len(outcome.Fields) > 0 {
			if updateErr := r.Directory.Update(ctx, provider.ID, outcome.Fields); updateErr != nil {
				report.Errors++
				rowLogger.Warn("directory update failed", logging.Error(updateErr))
			} else if outcome.Found {
				report.Updated++
				rowLogger.Info("provider enriched", slog.Int("fields", len(outcome.Fields)))
			} else {
				report.NotFound++
				rowLogger.Info("no data found, row marked checked")
			}
		} else {
			report.NotFound++
			rowLogger.Info("no data found")
		}

		if waitErr := r.pace(ctx, i, len(providers)); waitErr != nil {
			runErr = waitErr
			break
		}
	}

	report.Finished = time.Now().UTC()
	r.finishHistory(ctx, logger, run, report, runErr)

	if runErr != nil {
		r.notifyFailed(ctx, report, runErr)
		return report, runErr
	}

	logger.Info("batch complete",
		slog.String(logging.FieldEventType, "run_complete"),
		slog.Int("processed", report.Processed),
		slog.Int("updated", report.Updated),
		slog.Int("not_found", report.NotFound),
		slog.Int("errors", report.Errors),
		slog.Int64("spend", report.Spend),
		slog.Duration("duration", report.Duration()))
	r.notify(ctx, logger, notifications.EventRunCompleted, notifications.Payload{
		"job":      report.Job,
		"batch":    strconv.Itoa(report.BatchNumber),
		"updated":  strconv.Itoa(report.Updated),
		"notFound": strconv.Itoa(report.NotFound),
		"errors":   strconv.Itoa(report.Errors),
	})
	return report, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return logging.NewComponentLogger(r.Logger, "enrich")
}

func (r *Runner) reserve() int64 {
	if r.Reserve > 0 {
		return r.Reserve
	}
	return 1
}

func (r *Runner) pace(ctx context.Context, index, total int) error {
	if r.Pacer == nil || index >= total-1 {
		return nil
	}
	return r.Pacer.Wait(ctx, index+1)
}

func (r *Runner) startHistory(ctx context.Context, logger *slog.Logger, job string) *runhistory.Run {
	if r.History == nil {
		return nil
	}
	run, err := r.History.StartRun(ctx, job, r.BatchNumber, r.BatchSize)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		return nil
	}
	return run
}

func (r *Runner) finishHistory(ctx context.Context, logger *slog.Logger, run *runhistory.Run, report *Report, runErr error) {
	if r.History == nil || run == nil {
		return
	}
	note := ""
	switch {
	case runErr != nil:
		note = "aborted: " + runErr.Error()
	case report.BudgetStopped:
		note = "stopped: credit budget exhausted"
	}
	if _, err := r.History.FinishRun(ctx, run.ID, report.totals(), note); err != nil {
		logger.Warn("run history update failed", logging.Error(err))
	}
}

func (r *Runner) notify(ctx context.Context, logger *slog.Logger, event notifications.Event, payload notifications.Payload) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.Publish(ctx, event, payload); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}
}

func (r *Runner) notifyFailed(ctx context.Context, report *Report, runErr error) {
	if r.Notifier == nil {
		return
	}
	_ = r.Notifier.Publish(ctx, notifications.EventRunFailed, notifications.Payload{
		"job":   report.Job,
		"batch": strconv.Itoa(report.BatchNumber),
		"error": runErr.Error(),
	})
}
