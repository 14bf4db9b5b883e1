package runhistory

import "time"

// Run is one recorded batch invocation. FinishedAt is nil while the run is
// in flight or when the process died before closing it out.
type Run struct {
	ID          int64
	Token       string
	Job         string
	BatchNumber int
	BatchSize   int
	StartedAt   time.Time
	FinishedAt  *time.Time
	Processed   int
	Updated     int
	NotFound    int
	Errors      int
	Spend       int64
	Note        string
}

// Finished reports whether the run was closed out.
func (r *Run) Finished() bool {
	return r != nil && r.FinishedAt != nil
}

// Duration returns how long the run took, or how long it has been running.
func (r *Run) Duration(now time.Time) time.Duration {
	if r == nil || r.StartedAt.IsZero() {
		return 0
	}
	end := now
	if r.FinishedAt != nil {
		end = *r.FinishedAt
	}
	if end.Before(r.StartedAt) {
		return 0
	}
	return end.Sub(r.StartedAt)
}

// Totals carries the counters a job reports when it closes out a run.
type Totals struct {
	Processed int
	Updated   int
	NotFound  int
	Errors    int
	Spend     int64
}
