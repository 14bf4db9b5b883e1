// Package notifications delivers run lifecycle events via ntfy.
//
// The service publishes to the topic configured in config.toml and
// gracefully degrades to a no-op when notifications are disabled, so jobs
// never need to guard their sends. Enumerated event types cover the batch
// milestones so commands can emit consistent messages without duplicating
// HTTP glue.
package notifications
