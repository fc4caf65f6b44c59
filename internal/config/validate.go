package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration consistency. Normalization has already
// applied defaults, so validation only rejects values no default can fix.
func (c *Config) Validate() error {
	if err := c.validateRating(); err != nil {
		return err
	}
	if err := c.validateRetriever(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRating() error {
	switch c.Rating.Backend {
	case "cli", "api":
	default:
		return fmt.Errorf("rating.backend: unknown backend %q (expected \"cli\" or \"api\")", c.Rating.Backend)
	}
	if c.Rating.Backend == "api" {
		if c.LLM.APIKey == "" {
			return errors.New("llm.api_key: required when rating.backend is \"api\" (or set OPENROUTER_API_KEY)")
		}
		if c.LLM.Model == "" {
			return errors.New("llm.model: required when rating.backend is \"api\"")
		}
	}
	return nil
}

func (c *Config) validateRetriever() error {
	switch c.Retriever.Type {
	case "local", "qdrant":
		return nil
	default:
		return fmt.Errorf("retriever.type: unknown type %q (expected \"local\" or \"qdrant\")", c.Retriever.Type)
	}
}

func (c *Config) validatePublish() error {
	if c.Publish.Enabled && c.Publish.RepoDir == "" {
		return errors.New("publish.repo_dir: required when publish.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q (expected \"console\" or \"json\")", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
}
