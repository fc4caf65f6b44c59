package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cellar/internal/logging"
	"cellar/internal/namematch"
)

type fakeRetriever struct {
	docs     []Document
	err      error
	requests []string
}

func (f *fakeRetriever) Retrieve(_ context.Context, query string) ([]Document, error) {
	f.requests = append(f.requests, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func newResolver(r Retriever) *Resolver {
	return NewResolver(r, namematch.DefaultRules(), logging.NewNop())
}

func TestContextMatchesProducerDocument(t *testing.T) {
	retriever := &fakeRetriever{docs: []Document{
		{Content: "Unrelated Winery\nnothing here"},
		{Content: "Domaine X\n★★★ top Burgundy estate"},
	}}

	text, err := newResolver(retriever).Context(context.Background(), "Domaine X", "Cuvée A")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if text != "Domaine X\n★★★ top Burgundy estate" {
		t.Fatalf("unexpected context: %q", text)
	}
}

func TestContextProducerAndWineMatches(t *testing.T) {
	retriever := &fakeRetriever{docs: []Document{
		{Content: "Château Margaux\nfirst growth"},
		{Content: "Pavillon Rouge\nsecond wine"},
	}}

	text, err := newResolver(retriever).Context(context.Background(), "Château Margaux", "Pavillon Rouge")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if !strings.Contains(text, "first growth") || !strings.Contains(text, "second wine") {
		t.Fatalf("expected both matches, got %q", text)
	}
	if !strings.Contains(text, "\n\n") {
		t.Fatalf("matches should be newline-pair joined: %q", text)
	}
}

func TestContextSameDocumentBothSlots(t *testing.T) {
	retriever := &fakeRetriever{docs: []Document{
		{Content: "Domaine X\nguide entry"},
	}}

	text, err := newResolver(retriever).Context(context.Background(), "Domaine X", "Domaine X Rouge")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if count := strings.Count(text, "guide entry"); count != 1 {
		t.Fatalf("matched document duplicated %d times: %q", count, text)
	}
}

func TestContextFallbackToLeadingDocs(t *testing.T) {
	retriever := &fakeRetriever{docs: []Document{
		{Content: "Entry One\na"},
		{Content: "Entry Two\nb"},
		{Content: "Entry Three\nc"},
		{Content: "Entry Four\nd"},
	}}

	text, err := newResolver(retriever).Context(context.Background(), "Totally Unknown Winery", "Mystery Bottling")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if strings.Contains(text, "Entry Four") {
		t.Fatalf("fallback should cap at three documents: %q", text)
	}
	for _, want := range []string{"Entry One", "Entry Two", "Entry Three"} {
		if !strings.Contains(text, want) {
			t.Fatalf("fallback missing %q: %q", want, text)
		}
	}
}

func TestContextEmptyWhenNothingRetrieved(t *testing.T) {
	text, err := newResolver(&fakeRetriever{}).Context(context.Background(), "Domaine X", "")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty context, got %q", text)
	}
}

func TestContextPropagatesRetrieverError(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("store offline")}
	if _, err := newResolver(retriever).Context(context.Background(), "Domaine X", ""); err == nil {
		t.Fatal("expected retriever error to propagate")
	}
}

func TestCollectDeduplicatesAcrossQueries(t *testing.T) {
	shared := Document{Content: "Domaine X\nsame entry either way"}
	retriever := &fakeRetriever{docs: []Document{shared}}
	resolver := newResolver(retriever)

	docs, err := resolver.collect(context.Background(), "Domaine X", "Domaine X Rouge")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 deduplicated doc, got %d", len(docs))
	}
	if len(retriever.requests) != 2 {
		t.Fatalf("expected 2 retrieval requests, got %d", len(retriever.requests))
	}
	// Each request carries the search name and the loose form on two lines.
	if !strings.Contains(retriever.requests[0], "\n") {
		t.Fatalf("request missing loose form: %q", retriever.requests[0])
	}
}

func TestDocumentKeyAndIdentity(t *testing.T) {
	doc := Document{Content: "Domaine X\nbody text"}
	if doc.Key() != "Domaine X" {
		t.Fatalf("Key = %q", doc.Key())
	}
	long := Document{Content: strings.Repeat("x", 250)}
	if len(long.Identity()) != identityPrefixLen {
		t.Fatalf("Identity length = %d", len(long.Identity()))
	}
	short := Document{Content: "short"}
	if short.Identity() != "short" {
		t.Fatalf("Identity = %q", short.Identity())
	}
}
