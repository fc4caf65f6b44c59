// Package qdrant is a minimal REST client for a Qdrant vector collection.
// It covers only what the guide retriever needs: collection bootstrap,
// point upsert, and top-k similarity search with text payloads.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cellar/internal/services"
)

const defaultHTTPTimeout = 15 * time.Second

// Config contains connection details for a Qdrant collection.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Client talks to one Qdrant collection over REST.
type Client struct {
	url        string
	apiKey     string
	collection string
	httpClient *http.Client
}

// NewClient constructs a Qdrant client. The collection is created lazily by
// Init; search assumes it exists.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{
		url:        strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		collection: strings.TrimSpace(cfg.Collection),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Point is one stored vector and its text payload.
type Point struct {
	ID     string
	Vector []float64
	Text   string
}

// ScoredText is one search hit: the stored text and its similarity score.
type ScoredText struct {
	Text  string
	Score float64
}

// Init creates the collection with cosine distance if it does not exist.
func (c *Client) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("qdrant init: invalid dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", c.collection), body, nil)
}

// Upsert writes points into the collection, waiting for durability.
func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	encoded := make([]map[string]any, len(points))
	for i, p := range points {
		encoded[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": map[string]any{"text": p.Text},
		}
	}
	body := map[string]any{"points": encoded}
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", c.collection), body, nil)
}

// Search returns the topK most similar stored texts for the query vector.
func (c *Client) Search(ctx context.Context, vector []float64, topK int) ([]ScoredText, error) {
	if topK <= 0 {
		topK = 10
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var parsed struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", c.collection), body, &parsed); err != nil {
		return nil, err
	}
	results := make([]ScoredText, 0, len(parsed.Result))
	for _, r := range parsed.Result {
		text, _ := r.Payload["text"].(string)
		if text == "" {
			continue
		}
		results = append(results, ScoredText{Text: text, Score: r.Score})
	}
	return results, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("qdrant: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("qdrant: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "qdrant", method+" "+path, "request failed", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrTransient, "qdrant", method+" "+path, "read body", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return services.Wrap(services.ErrNotFound, "qdrant", method+" "+path,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(data))), nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrExternalTool, "qdrant", method+" "+path,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(data))), nil)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return services.Wrap(services.ErrExternalTool, "qdrant", method+" "+path, "decode response", err)
		}
	}
	return nil
}
