// Package budget implements the spend gate: a persisted monotonic counter
// with a ceiling that stops a batch job before it overspends a metered
// external resource such as paid scrape credits.
//
// The counter survives process restarts by persisting through a Store handle
// supplied at construction. Two stores are provided: a plain-text file (with
// optional advisory locking to enforce the single-writer assumption) and a
// SQLite table for deployments that want transactional writes.
//
// The gate itself never fails hard. Loading falls back to zero when the
// stored value is missing or unreadable, and a failed save leaves the
// in-memory counter advanced so the current process still respects the
// ceiling. Callers must check CanSpend immediately before each unit of spend
// and record actual usage with Add afterwards; the gate cannot prevent a
// caller that skips the check.
package budget
