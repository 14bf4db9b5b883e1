// Package firecrawl drives the managed scraping API's /scrape endpoint with
// prompt-based JSON extraction.
//
// Scrapes cost paid credits, so callers are expected to gate each call
// through the spend ledger and record the credits a helper reports
// actually consuming.
package firecrawl
