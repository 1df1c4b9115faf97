// Package search finds purchasable products matching identified
// furniture items.
//
// It wraps a scraper API fronting Google text search and Google Lens,
// an image host used to stage uploads for visual search, deterministic
// search-query generation from furniture attributes, and LLM-backed
// shopping recommendations resolved to retailer search links.
//
// The scraper and the language model are both optional at runtime:
// searches without an API key return ErrNotConfigured, and the Agent
// degrades to a deterministic recommendation when no Recommender is
// wired in.
package search
