// Package textutil provides text processing utilities for building review-site
// URL slugs and normalizing business names scraped from external sources.
//
// Slugs lowercase the input, drop punctuation, and join the remaining words
// with hyphens, matching the URL conventions of the review platforms the
// enrichment jobs target.
package textutil
