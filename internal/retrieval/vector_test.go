package retrieval

import (
	"context"
	"errors"
	"testing"

	"cellar/internal/services/qdrant"
)

type fakeEmbedder struct {
	vec []float64
	err error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float64, error) {
	return f.vec, f.err
}

type fakeIndex struct {
	hits []qdrant.ScoredText
	err  error
	topK int
}

func (f *fakeIndex) Search(_ context.Context, _ []float64, topK int) ([]qdrant.ScoredText, error) {
	f.topK = topK
	return f.hits, f.err
}

func TestVectorRetrieverMapsHits(t *testing.T) {
	index := &fakeIndex{hits: []qdrant.ScoredText{
		{Text: "Domaine X\n★★★", Score: 0.9},
		{Text: "Maison Y\n★★", Score: 0.5},
	}}
	retriever := NewVectorRetriever(&fakeEmbedder{vec: []float64{0.1}}, index, 0)

	docs, err := retriever.Retrieve(context.Background(), "domaine x")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].Key() != "Domaine X" {
		t.Fatalf("unexpected first doc key %q", docs[0].Key())
	}
	if index.topK != 10 {
		t.Fatalf("default topK = %d, want 10", index.topK)
	}
}

func TestVectorRetrieverEmbedError(t *testing.T) {
	retriever := NewVectorRetriever(&fakeEmbedder{err: errors.New("down")}, &fakeIndex{}, 5)
	if _, err := retriever.Retrieve(context.Background(), "q"); err == nil {
		t.Fatal("expected embed error")
	}
}

func TestVectorRetrieverSearchError(t *testing.T) {
	retriever := NewVectorRetriever(&fakeEmbedder{vec: []float64{1}}, &fakeIndex{err: errors.New("down")}, 5)
	if _, err := retriever.Retrieve(context.Background(), "q"); err == nil {
		t.Fatal("expected search error")
	}
}
