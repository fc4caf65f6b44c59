// Package pipeline orchestrates the rating run: it discovers unrated wines
// across all configured listing files, rates them under a bounded worker
// pool, and persists each completed rating straight back to its source
// file.
//
// Persistence is incremental by design. Every task completion rewrites the
// whole listing it belongs to under one shared mutex, so an interrupt or
// crash loses at most the in-flight batch and never interleaves partial
// file contents. A flock lock file additionally keeps concurrent cellar
// processes off the same listings.
package pipeline
