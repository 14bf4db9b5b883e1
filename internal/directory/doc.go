// Package directory talks to the hosted business-directory backend over its
// PostgREST-style REST interface.
//
// The enrichment jobs only ever do two things with the backend: fetch a page
// of provider rows that are still missing a target field, and PATCH enriched
// fields back onto a single row. Batch paging uses stable id ordering with
// limit/offset derived from the batch number, so independently scheduled
// invocations walk the table without coordination.
package directory
