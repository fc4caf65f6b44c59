// Package guide implements the offline wine-guide index: a SQLite store of
// guide entries searchable by normalized-name overlap.
//
// It exists so the rating pipeline can run without an embedding server or
// vector store. Scoring is deliberately simple — variant and token overlap
// against each entry's normalized name — because guide lookups are then
// re-matched precisely by the retrieval resolver anyway.
package guide
