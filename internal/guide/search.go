package guide

import (
	"context"
	"sort"
	"strings"

	"cellar/internal/namematch"
	"cellar/internal/retrieval"
)

// Retriever adapts a Store to the retrieval.Retriever interface with a
// fixed top-k cutoff.
type Retriever struct {
	store *Store
	topK  int
}

// NewRetriever wraps a store for use by the retrieval resolver.
func NewRetriever(store *Store, topK int) *Retriever {
	if topK <= 0 {
		topK = 10
	}
	return &Retriever{store: store, topK: topK}
}

// Retrieve scores all indexed entries against the query and returns the
// best topK as documents, highest score first. Entries scoring zero are
// omitted entirely.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]retrieval.Document, error) {
	entries, err := r.store.allEntries(ctx)
	if err != nil {
		return nil, err
	}

	tokens, words := queryKeys(query, r.store.rules)

	type scored struct {
		score int
		idx   int
	}
	var hits []scored
	for i, e := range entries {
		if score := scoreEntry(e.token, tokens, words, r.store.rules); score > 0 {
			hits = append(hits, scored{score: score, idx: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > r.topK {
		hits = hits[:r.topK]
	}

	docs := make([]retrieval.Document, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, retrieval.Document{Content: entries[hit.idx].content})
	}
	return docs, nil
}

// queryKeys normalizes each query line into a hyphen token and collects the
// individual words usable for overlap scoring.
func queryKeys(query string, rules namematch.Rules) (tokens []string, words map[string]struct{}) {
	words = make(map[string]struct{})
	for _, line := range strings.Split(query, "\n") {
		token := namematch.Normalize(line)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
		for _, w := range rules.Variants(token) {
			if !strings.Contains(w, "-") {
				words[w] = struct{}{}
			}
		}
	}
	return tokens, words
}

// scoreEntry weighs an entry's name token against the query: full variant
// prefix matches dominate, single-word overlap breaks ties.
func scoreEntry(entryToken string, tokens []string, words map[string]struct{}, rules namematch.Rules) int {
	score := 0
	for _, token := range tokens {
		for _, variant := range rules.Variants(token) {
			if namematch.MatchesVariant(entryToken, variant) {
				score += 2 * len(variant)
			}
		}
	}
	for word := range words {
		if strings.Contains(entryToken, word) {
			score += len(word)
		}
	}
	return score
}
