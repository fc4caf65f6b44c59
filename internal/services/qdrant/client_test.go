package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cellar/internal/services"
)

func TestSearchReturnsPayloadText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/guide/points/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["limit"].(float64) != 10 {
			t.Errorf("unexpected limit %v", body["limit"])
		}
		w.Write([]byte(`{"result":[
			{"score":0.91,"payload":{"text":"Domaine X\n★★★"}},
			{"score":0.55,"payload":{}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Collection: "guide"})
	hits, err := client.Search(context.Background(), []float64{0.1, 0.2}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit with text, got %d", len(hits))
	}
	if hits[0].Text != "Domaine X\n★★★" || hits[0].Score != 0.91 {
		t.Fatalf("unexpected hit %+v", hits[0])
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "collection missing", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Collection: "guide"})
	_, err := client.Search(context.Background(), []float64{0.1}, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing collection not tagged as not found: %v", err)
	}
}

func TestInitRejectsInvalidDimension(t *testing.T) {
	client := NewClient(Config{URL: "http://localhost:6333", Collection: "guide"})
	if err := client.Init(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestUpsertSendsPayload(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"result":{}}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Collection: "guide"})
	err := client.Upsert(context.Background(), []Point{
		{ID: "1", Vector: []float64{0.1}, Text: "Domaine X"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	points := received["points"].([]any)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
}
