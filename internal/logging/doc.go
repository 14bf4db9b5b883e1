// Package logging builds the slog loggers used across the enrichment CLI.
//
// Two output formats are supported: a compact console format for interactive
// runs and JSON for scheduled invocations whose output lands in log
// aggregation. Loggers write to stdout and, when a log directory is
// configured, to a shared finderhub.log file so separate batch invocations
// leave a combined trail.
package logging
