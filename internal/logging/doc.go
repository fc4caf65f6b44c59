// Package logging assembles the structured slog loggers used across cellar.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized field names components attach to
// their log lines. Prefer these constructors over hand-rolled slog setup so
// every component emits data with the same shape.
package logging
