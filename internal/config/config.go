package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data directory and listing file configuration.
type Paths struct {
	DataDir      string   `toml:"data_dir"`
	LogDir       string   `toml:"log_dir"`
	ListingDir   string   `toml:"listing_dir"`
	ListingFiles []string `toml:"listing_files"`
}

// Matching contains the producer-name vocabulary used for matching.
type Matching struct {
	GenericPrefixes  []string `toml:"generic_prefixes"`
	StopWords        []string `toml:"stop_words"`
	MinVariantLength int      `toml:"min_variant_length"`
}

// Rating contains rating run settings.
type Rating struct {
	Workers        int    `toml:"workers"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Backend        string `toml:"backend"`
	CLIBinary      string `toml:"cli_binary"`
	Model          string `toml:"model"`
}

// LLM contains connection settings for the HTTP completion backend.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Retriever selects and configures the guide context source.
type Retriever struct {
	Type             string `toml:"type"`
	TopK             int    `toml:"top_k"`
	IndexPath        string `toml:"index_path"`
	QdrantURL        string `toml:"qdrant_url"`
	QdrantAPIKey     string `toml:"qdrant_api_key"`
	QdrantCollection string `toml:"qdrant_collection"`
	OllamaURL        string `toml:"ollama_url"`
	EmbedModel       string `toml:"embed_model"`
}

// Publish contains git publishing settings for rated listings.
type Publish struct {
	Enabled       bool   `toml:"enabled"`
	RepoDir       string `toml:"repo_dir"`
	CommitMessage string `toml:"commit_message"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cellar.
//
// Sections by subsystem:
//   - Paths: data/log directories and the listing files to rate
//   - Matching: generic-word vocabulary for producer name matching
//   - Rating: worker pool, backend selection, call timeout
//   - LLM: HTTP completion backend connection settings
//   - Retriever: local sqlite index or qdrant vector search
//   - Publish: git commit-and-push of rated listings
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Matching  Matching  `toml:"matching"`
	Rating    Rating    `toml:"rating"`
	LLM       LLM       `toml:"llm"`
	Retriever Retriever `toml:"retriever"`
	Publish   Publish   `toml:"publish"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cellar/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	// Secrets commonly live in a .env next to the listings checkout.
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cellar.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Listings returns the listing files a run should process: the explicit
// list when set, otherwise every .txt file under the listing directory.
func (c *Config) Listings() ([]string, error) {
	if len(c.Paths.ListingFiles) > 0 {
		return c.Paths.ListingFiles, nil
	}
	if strings.TrimSpace(c.Paths.ListingDir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(c.Paths.ListingDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan listing directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(c.Paths.ListingDir, entry.Name()))
	}
	return files, nil
}

// LockFile returns the flock path guarding concurrent rating runs.
func (c *Config) LockFile() string {
	return filepath.Join(c.Paths.DataDir, "cellar.lock")
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
