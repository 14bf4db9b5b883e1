package budget

import (
	"log/slog"

	"finderhub/internal/logging"
)

// Ledger is the spend gate: a ceiling-bound counter loaded from a Store at
// construction and persisted after every increment.
//
// A ledger assumes at most one writer process at a time. The file store's
// advisory lock enforces that assumption when enabled; without it, the last
// writer wins.
type Ledger struct {
	store   Store
	ceiling int64
	used    int64
	origin  Origin
	logger  *slog.Logger
}

// Open loads the persisted counter and returns a ready ledger. Loading fails
// open: missing or corrupt storage starts the counter at zero, with the
// outcome recorded on the ledger and logged for operators.
func Open(store Store, ceiling int64, logger *slog.Logger) *Ledger {
	if ceiling < 0 {
		ceiling = 0
	}
	logger = logging.NewComponentLogger(logger, "budget")

	result := store.Load()
	switch result.Origin {
	case OriginDefaulted:
		logger.Warn("spend ledger unreadable, resuming from zero",
			logging.String(logging.FieldEventType, "ledger_defaulted"),
			logging.String("location", store.Location()),
			logging.Error(result.Err),
			logging.String(logging.FieldImpact, "spend before this run is no longer counted against the ceiling"))
	case OriginFresh:
		logger.Info("spend ledger starting fresh",
			logging.String("location", store.Location()))
	default:
		logger.Info("spend ledger loaded",
			logging.Int64("used", result.Used),
			logging.Int64("ceiling", ceiling),
			logging.String("location", store.Location()))
	}

	return &Ledger{
		store:   store,
		ceiling: ceiling,
		used:    result.Used,
		origin:  result.Origin,
		logger:  logger,
	}
}

// CanSpend reports whether amount more units fit under the ceiling. It has no
// side effects; callers must invoke it immediately before each spend.
func (l *Ledger) CanSpend(amount int64) bool {
	if amount < 0 {
		amount = 0
	}
	return l.used+amount <= l.ceiling
}

// Add records amount units of actual spend and persists the new total. A
// persistence failure is logged and otherwise ignored: the in-memory counter
// still advances so the current process keeps respecting the ceiling, at the
// accepted risk of under-reporting to the next invocation if this one crashes.
func (l *Ledger) Add(amount int64) {
	if amount <= 0 {
		return
	}
	l.used += amount
	if err := l.store.Save(l.used); err != nil {
		l.logger.Warn("failed to persist spend ledger",
			logging.String(logging.FieldEventType, "ledger_save_failed"),
			logging.Int64("used", l.used),
			logging.String("location", l.store.Location()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "a crash before the next successful save under-reports spend"))
	}
}

// Used returns the units consumed so far.
func (l *Ledger) Used() int64 { return l.used }

// Ceiling returns the configured never-exceed limit.
func (l *Ledger) Ceiling() int64 { return l.ceiling }

// Remaining returns ceiling minus used. It is informational; gating decisions
// must go through CanSpend.
func (l *Ledger) Remaining() int64 { return l.ceiling - l.used }

// Origin reports how the counter value was obtained at load time.
func (l *Ledger) Origin() Origin { return l.origin }

// Location describes the backing store for reporting.
func (l *Ledger) Location() string { return l.store.Location() }
