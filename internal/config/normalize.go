package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeRating()
	c.normalizeLLM()
	if err := c.normalizeRetriever(); err != nil {
		return err
	}
	if err := c.normalizePublish(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ListingDir) != "" {
		if c.Paths.ListingDir, err = expandPath(c.Paths.ListingDir); err != nil {
			return fmt.Errorf("paths.listing_dir: %w", err)
		}
	}
	for i, file := range c.Paths.ListingFiles {
		if c.Paths.ListingFiles[i], err = expandPath(file); err != nil {
			return fmt.Errorf("paths.listing_files[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.MinVariantLength <= 0 {
		c.Matching.MinVariantLength = defaultMinVariantLength
	}
}

func (c *Config) normalizeRating() {
	if c.Rating.Workers <= 0 {
		c.Rating.Workers = defaultRatingWorkers
	}
	if c.Rating.TimeoutSeconds <= 0 {
		c.Rating.TimeoutSeconds = defaultRatingTimeout
	}
	c.Rating.Backend = strings.ToLower(strings.TrimSpace(c.Rating.Backend))
	if c.Rating.Backend == "" {
		c.Rating.Backend = defaultRatingBackend
	}
	c.Rating.CLIBinary = strings.TrimSpace(c.Rating.CLIBinary)
	if c.Rating.CLIBinary == "" {
		c.Rating.CLIBinary = defaultCLIBinary
	}
	c.Rating.Model = strings.TrimSpace(c.Rating.Model)
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeRetriever() error {
	var err error
	c.Retriever.Type = strings.ToLower(strings.TrimSpace(c.Retriever.Type))
	if c.Retriever.Type == "" {
		c.Retriever.Type = defaultRetrieverType
	}
	if c.Retriever.TopK <= 0 {
		c.Retriever.TopK = defaultRetrieverTopK
	}
	if strings.TrimSpace(c.Retriever.IndexPath) == "" {
		c.Retriever.IndexPath = defaultIndexPath
	}
	if c.Retriever.IndexPath, err = expandPath(c.Retriever.IndexPath); err != nil {
		return fmt.Errorf("retriever.index_path: %w", err)
	}
	c.Retriever.QdrantURL = strings.TrimSpace(c.Retriever.QdrantURL)
	if c.Retriever.QdrantURL == "" {
		c.Retriever.QdrantURL = defaultQdrantURL
	}
	c.Retriever.QdrantAPIKey = strings.TrimSpace(c.Retriever.QdrantAPIKey)
	if c.Retriever.QdrantAPIKey == "" {
		if value, ok := os.LookupEnv("QDRANT_API_KEY"); ok {
			c.Retriever.QdrantAPIKey = strings.TrimSpace(value)
		}
	}
	c.Retriever.QdrantCollection = strings.TrimSpace(c.Retriever.QdrantCollection)
	if c.Retriever.QdrantCollection == "" {
		c.Retriever.QdrantCollection = defaultQdrantCollection
	}
	c.Retriever.OllamaURL = strings.TrimSpace(c.Retriever.OllamaURL)
	if c.Retriever.OllamaURL == "" {
		c.Retriever.OllamaURL = defaultOllamaURL
	}
	c.Retriever.EmbedModel = strings.TrimSpace(c.Retriever.EmbedModel)
	if c.Retriever.EmbedModel == "" {
		c.Retriever.EmbedModel = defaultEmbedModel
	}
	return nil
}

func (c *Config) normalizePublish() error {
	var err error
	c.Publish.RepoDir = strings.TrimSpace(c.Publish.RepoDir)
	if c.Publish.RepoDir != "" {
		if c.Publish.RepoDir, err = expandPath(c.Publish.RepoDir); err != nil {
			return fmt.Errorf("publish.repo_dir: %w", err)
		}
	}
	c.Publish.CommitMessage = strings.TrimSpace(c.Publish.CommitMessage)
	if c.Publish.CommitMessage == "" {
		c.Publish.CommitMessage = defaultCommitMessage
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
