package retrieval

import (
	"context"
	"strings"
)

// identityPrefixLen is how much leading text identifies a document for
// deduplication. The same guide entry often comes back for both the
// producer and the wine query; comparing the first 100 characters is enough
// to collapse those without hashing whole payloads. Near-duplicates with
// differing leading text stay distinct, which is accepted.
const identityPrefixLen = 100

// Document is one retrieved guide entry. Only the text payload matters to
// the matcher; the first line doubles as the entry's canonical name.
type Document struct {
	Content string
}

// Key returns the document's canonical reference key: its first line.
func (d Document) Key() string {
	if idx := strings.IndexByte(d.Content, '\n'); idx >= 0 {
		return d.Content[:idx]
	}
	return d.Content
}

// Identity returns the content-prefix dedup key.
func (d Document) Identity() string {
	if len(d.Content) <= identityPrefixLen {
		return d.Content
	}
	return d.Content[:identityPrefixLen]
}

// Retriever returns guide documents relevant to a free-text query, most
// relevant first. Implementations own the top-k cutoff.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Document, error)
}
