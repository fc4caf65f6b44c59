// Package services defines shared utilities consumed by the external
// service clients (reasoning backends, embeddings, vector search).
//
// It owns the structured error markers plus the Wrap helper that keep
// failure classification consistent across clients, and the context helpers
// that stamp run identifiers for logging. Use these when wiring new clients
// so error handling and observability stay uniform.
package services
