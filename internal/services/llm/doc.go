// Package llm implements the API-backed reasoning client: an
// OpenAI-compatible chat-completions call with JSON-only responses and
// bounded retry on rate limits and server errors. It is the alternative to
// the claudecli backend for environments without the CLI installed.
package llm
