// Package retrieval resolves wine-guide context for a producer and wine
// name against an injected document retriever.
//
// The resolver submits normalized query forms, deduplicates the returned
// documents, and scans them for the first producer match and the first wine
// match using variant-based fuzzy key comparison. When neither matches it
// falls back to the leading documents so the rating step always receives
// some context whenever the retriever returned anything at all.
package retrieval
