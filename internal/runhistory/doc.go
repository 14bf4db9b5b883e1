// Package runhistory records each batch run in a local SQLite database so
// operators can see what a job processed, what it changed, and what it
// spent, without digging through logs.
package runhistory
