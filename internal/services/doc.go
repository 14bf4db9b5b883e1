// Package services defines the shared error taxonomy and context carriers used
// by the external service clients and the batch runner.
//
// Errors are classified with sentinel markers so the runner can decide whether
// a failure should stop the batch (configuration problems), skip the row
// (lookup misses, transient upstream errors), or end the run cleanly (budget
// exhaustion, which is expected operation rather than failure).
package services
