package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cellar/internal/config"
	"cellar/internal/deps"
	"cellar/internal/guide"
	"cellar/internal/logging"
	"cellar/internal/namematch"
	"cellar/internal/pipeline"
	"cellar/internal/publish"
	"cellar/internal/rating"
	"cellar/internal/retrieval"
	"cellar/internal/services/claudecli"
	"cellar/internal/services/llm"
	"cellar/internal/services/ollama"
	"cellar/internal/services/qdrant"
)

func newRateCommand(ctx *commandContext) *cobra.Command {
	var noPublish bool

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Rate every unrated wine in the configured listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			files, err := cfg.Listings()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No listing files configured; set paths.listing_dir or paths.listing_files")
				return nil
			}

			reqs := deps.ForRun(cfg.Rating.Backend == "cli", cfg.Rating.CLIBinary,
				cfg.Publish.Enabled && !noPublish)
			if missing := deps.FirstMissing(deps.CheckBinaries(reqs)); missing != nil {
				return fmt.Errorf("missing dependency %s: %s", missing.Name, missing.Detail)
			}

			rules := matchingRules(cfg)

			retriever, cleanup, err := newRetriever(cfg, rules)
			if err != nil {
				return err
			}
			defer cleanup()

			resolver := retrieval.NewResolver(retriever, rules, logger)
			completer, err := newCompleter(cfg)
			if err != nil {
				return err
			}
			invoker := rating.NewInvoker(resolver, completer,
				time.Duration(cfg.Rating.TimeoutSeconds)*time.Second, logger)

			pl := pipeline.New(invoker, pipeline.Config{
				ListingPaths: files,
				Workers:      cfg.Rating.Workers,
				LockPath:     cfg.LockFile(),
			}, logger)

			summary, err := pl.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Total == 0 {
				fmt.Fprintln(out, "All wines already rated")
				return nil
			}
			fmt.Fprintln(out, renderSummaryTable(summary.Results))
			fmt.Fprintf(out, "Rated %d wine(s), %d degraded\n", summary.Rated, summary.Degraded)

			if cfg.Publish.Enabled && !noPublish {
				pub := publish.New(cfg.Publish.RepoDir, logger,
					publish.WithMessage(cfg.Publish.CommitMessage))
				if err := pub.Publish(cmd.Context(), summary.Files); err != nil {
					// Ratings are already on disk; a failed push is noise,
					// not lost work.
					logger.Warn("publish failed", logging.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: publish failed: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "Skip the git publish step even when enabled")
	return cmd
}

func matchingRules(cfg *config.Config) namematch.Rules {
	return namematch.NewRules(cfg.Matching.GenericPrefixes, cfg.Matching.StopWords,
		cfg.Matching.MinVariantLength)
}

// newRetriever builds the configured guide context source. The cleanup
// function releases any backing store and is always safe to call.
func newRetriever(cfg *config.Config, rules namematch.Rules) (retrieval.Retriever, func(), error) {
	switch cfg.Retriever.Type {
	case "qdrant":
		embedder := ollama.NewClient(
			ollama.WithBaseURL(cfg.Retriever.OllamaURL),
			ollama.WithModel(cfg.Retriever.EmbedModel),
		)
		index := qdrant.NewClient(qdrant.Config{
			URL:        cfg.Retriever.QdrantURL,
			APIKey:     cfg.Retriever.QdrantAPIKey,
			Collection: cfg.Retriever.QdrantCollection,
		})
		return retrieval.NewVectorRetriever(embedder, index, cfg.Retriever.TopK), func() {}, nil
	default:
		store, err := guide.Open(cfg.Retriever.IndexPath, rules)
		if err != nil {
			return nil, func() {}, err
		}
		return guide.NewRetriever(store, cfg.Retriever.TopK), func() { _ = store.Close() }, nil
	}
}

func newCompleter(cfg *config.Config) (rating.CompletionClient, error) {
	switch cfg.Rating.Backend {
	case "api":
		return llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		}), nil
	case "cli":
		return claudecli.NewClient(
			claudecli.WithBinary(cfg.Rating.CLIBinary),
			claudecli.WithModel(cfg.Rating.Model),
		), nil
	default:
		return nil, fmt.Errorf("unknown rating backend %q", cfg.Rating.Backend)
	}
}

