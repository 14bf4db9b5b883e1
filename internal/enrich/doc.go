// Package enrich drives batch enrichment runs: it pages providers out of the
// directory, hands each one to a job-specific enricher, writes results back,
// and paces requests so the external sources see human-speed traffic.
//
// The runner owns the cross-cutting concerns every job shares: spend gating,
// run history, notifications, and the distinction between a row-level error
// (skip the row, keep going) and a fatal one (stop the run).
package enrich
