// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cellar/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ListingDir = filepath.Join(base, "listings")
	cfgVal.Retriever.IndexPath = filepath.Join(base, "data", "guide.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithListings writes the given listing bodies into the listing directory
// and registers them as explicit listing files.
func WithListings(bodies ...string) ConfigOption {
	return func(b *configBuilder) {
		dir := b.cfg.Paths.ListingDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir listing dir: %v", err)
		}
		for i, body := range bodies {
			path := filepath.Join(dir, fmt.Sprintf("listing%d.txt", i+1))
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				b.t.Fatalf("write listing: %v", err)
			}
			b.cfg.Paths.ListingFiles = append(b.cfg.Paths.ListingFiles, path)
		}
	}
}

// WithRatingBackend selects the rating backend on the test config.
func WithRatingBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rating.Backend = backend
	}
}

// WithAPIKey sets the HTTP backend key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = key
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
