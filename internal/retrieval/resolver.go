package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cellar/internal/logging"
	"cellar/internal/namematch"
)

// fallbackDocCount is how many leading documents stand in for context when
// neither the producer nor the wine matched any retrieved entry.
const fallbackDocCount = 3

// Resolver builds guide context for a wine by querying a retriever and
// matching returned documents against the producer and wine names.
type Resolver struct {
	retriever Retriever
	rules     namematch.Rules
	logger    *slog.Logger
}

// NewResolver constructs a resolver around the given retriever.
func NewResolver(retriever Retriever, rules namematch.Rules, logger *slog.Logger) *Resolver {
	return &Resolver{
		retriever: retriever,
		rules:     rules,
		logger:    logging.NewComponentLogger(logger, "retrieval"),
	}
}

// Context returns the newline-pair-joined text of the best producer and
// wine document matches. Retriever failures propagate unchanged; the caller
// owns the degradation policy. An empty result means the retriever returned
// nothing for any query.
func (r *Resolver) Context(ctx context.Context, producer, wineName string) (string, error) {
	docs, err := r.collect(ctx, producer, wineName)
	if err != nil {
		return "", err
	}

	producerMatch, wineMatch := r.match(docs, producer, wineName)

	var matched []Document
	seen := make(map[string]struct{}, 2)
	for _, doc := range []*Document{producerMatch, wineMatch} {
		if doc == nil {
			continue
		}
		if _, dup := seen[doc.Identity()]; dup {
			continue
		}
		seen[doc.Identity()] = struct{}{}
		matched = append(matched, *doc)
	}
	if len(matched) == 0 {
		if len(docs) > fallbackDocCount {
			docs = docs[:fallbackDocCount]
		}
		matched = docs
		if len(matched) > 0 {
			r.logger.Debug("no name match, using leading documents",
				logging.String(logging.FieldProducer, producer),
				logging.Int("documents", len(matched)))
		}
	}

	parts := make([]string, 0, len(matched))
	for _, doc := range matched {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}

// collect runs one retrieval per non-empty name and deduplicates the
// results across queries by content-prefix identity, preserving retrieval
// order.
func (r *Resolver) collect(ctx context.Context, producer, wineName string) ([]Document, error) {
	var docs []Document
	seen := make(map[string]struct{})
	for _, query := range []string{producer, wineName} {
		if strings.TrimSpace(query) == "" {
			continue
		}
		// Both the prefix-stripped original and the loose-normalized form go
		// into one request so the retriever sees each spelling.
		request := r.rules.SearchName(query) + "\n" + r.rules.NormalizeLoose(query)
		results, err := r.retriever.Retrieve(ctx, request)
		if err != nil {
			return nil, fmt.Errorf("retrieve %q: %w", query, err)
		}
		for _, doc := range results {
			if _, dup := seen[doc.Identity()]; dup {
				continue
			}
			seen[doc.Identity()] = struct{}{}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// match scans documents in retrieval order, filling the producer and wine
// slots one-shot with the first document whose variant set overlaps the
// corresponding normalized name by symmetric containment. Either side may
// be the more specific string, so containment is checked both ways.
func (r *Resolver) match(docs []Document, producer, wineName string) (producerMatch, wineMatch *Document) {
	producerToken := namematch.Normalize(producer)
	wineToken := ""
	if wineName != "" {
		wineToken = namematch.Normalize(wineName)
	}

	for i := range docs {
		doc := &docs[i]
		variants := r.rules.Variants(namematch.Normalize(doc.Key()))
		if len(variants) == 0 {
			continue
		}
		if producerMatch == nil && containsAny(producerToken, variants) {
			producerMatch = doc
		}
		if wineMatch == nil && wineToken != "" && containsAny(wineToken, variants) {
			wineMatch = doc
		}
		if producerMatch != nil && wineMatch != nil {
			break
		}
	}
	return producerMatch, wineMatch
}

func containsAny(token string, variants []string) bool {
	if token == "" {
		return false
	}
	for _, variant := range variants {
		if strings.Contains(token, variant) || strings.Contains(variant, token) {
			return true
		}
	}
	return false
}
