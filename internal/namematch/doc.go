// Package namematch canonicalizes wine and producer names into comparable
// ASCII tokens and expands them into fuzzy-match variants.
//
// Guide entries and release listings spell the same producer in many ways:
// accented versus folded characters, typographic quotes and dashes, and
// generic title words ("Château", "Domaine") that carry no identity signal.
// The helpers here fold all of that away so the retrieval layer can compare
// names by deterministic substring and word-boundary rules instead of
// scoring heuristics.
package namematch
