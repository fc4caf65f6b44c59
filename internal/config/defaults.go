package config

const (
	defaultDataDir          = "~/.local/share/cellar"
	defaultLogDir           = "~/.local/share/cellar/logs"
	defaultMinVariantLength = 4
	defaultRatingWorkers    = 4
	defaultRatingTimeout    = 120
	defaultRatingBackend    = "cli"
	defaultCLIBinary        = "claude"
	defaultLLMBaseURL       = "https://openrouter.ai/api/v1"
	defaultLLMTimeout       = 120
	defaultRetrieverType    = "local"
	defaultRetrieverTopK    = 10
	defaultIndexPath        = "~/.local/share/cellar/guide.db"
	defaultQdrantURL        = "http://127.0.0.1:6333"
	defaultQdrantCollection = "wine_guide"
	defaultOllamaURL        = "http://127.0.0.1:11434"
	defaultEmbedModel       = "nomic-embed-text"
	defaultCommitMessage    = "Update wine ratings"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

func defaultGenericPrefixes() []string {
	return []string{"chateau", "chateaux", "domaine", "domaines", "dom", "clos", "maison"}
}

func defaultStopWords() []string {
	return []string{"chateau", "domaine", "dom", "clos", "maison"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			GenericPrefixes:  defaultGenericPrefixes(),
			StopWords:        defaultStopWords(),
			MinVariantLength: defaultMinVariantLength,
		},
		Rating: Rating{
			Workers:        defaultRatingWorkers,
			TimeoutSeconds: defaultRatingTimeout,
			Backend:        defaultRatingBackend,
			CLIBinary:      defaultCLIBinary,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Retriever: Retriever{
			Type:             defaultRetrieverType,
			TopK:             defaultRetrieverTopK,
			IndexPath:        defaultIndexPath,
			QdrantURL:        defaultQdrantURL,
			QdrantCollection: defaultQdrantCollection,
			OllamaURL:        defaultOllamaURL,
			EmbedModel:       defaultEmbedModel,
		},
		Publish: Publish{
			CommitMessage: defaultCommitMessage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
