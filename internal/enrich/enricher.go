package enrich

import (
	"context"

	"finderhub/internal/directory"
)

// Outcome describes what enriching one provider produced.
type Outcome struct {
	// Fields holds column values to PATCH onto the provider row. An empty
	// map means nothing to write.
	Fields map[string]any
	// Found reports whether the source actually had data for the business,
	// as opposed to a write that only marks the row as checked.
	Found bool
	// Spend is how many paid credits the lookup consumed. It is honored
	// even when Enrich also returns an error, so partial work still counts
	// against the ledger.
	Spend int64
}

// Enricher looks up one kind of data for directory providers.
type Enricher interface {
	// Name is the job label used in logs, run history, and notifications.
	Name() string
	// Query selects the rows still missing this job's data. The runner
	// fills in the batch window.
	Query() directory.BatchQuery
	// Enrich looks up one provider. A source miss is Found=false with no
	// error; errors are reserved for lookups that did not complete.
	Enrich(ctx context.Context, provider directory.Provider) (Outcome, error)
}
