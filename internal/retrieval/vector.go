package retrieval

import (
	"context"
	"fmt"

	"cellar/internal/services/qdrant"
)

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorIndex performs similarity search over stored guide entries.
type VectorIndex interface {
	Search(ctx context.Context, vector []float64, topK int) ([]qdrant.ScoredText, error)
}

// VectorRetriever embeds each query and looks it up in a vector index.
type VectorRetriever struct {
	embedder Embedder
	index    VectorIndex
	topK     int
}

// NewVectorRetriever composes an embedder and a vector index into a
// Retriever. A non-positive topK falls back to 10.
func NewVectorRetriever(embedder Embedder, index VectorIndex, topK int) *VectorRetriever {
	if topK <= 0 {
		topK = 10
	}
	return &VectorRetriever{embedder: embedder, index: index, topK: topK}
}

// Retrieve implements Retriever.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]Document, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := r.index.Search(ctx, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	docs := make([]Document, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, Document{Content: hit.Text})
	}
	return docs, nil
}
