// Package config loads, normalizes, and validates FinderHub configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment fallbacks the
// batch jobs historically ran on: DIRECTORY_URL, DIRECTORY_KEY,
// WEBSEARCH_API_KEY, FIRECRAWL_API_KEY, BATCH_NUMBER, and BATCH_SIZE. A .env
// file next to the working directory is loaded first, so local runs and CI
// secrets both resolve through the same path.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
