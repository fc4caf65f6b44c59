package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cellar/internal/config"
	"cellar/internal/guide"
	"cellar/internal/services/ollama"
	"cellar/internal/services/qdrant"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the tasting guide index",
	}
	indexCmd.AddCommand(newIndexBuildCommand(ctx))
	indexCmd.AddCommand(newIndexStatusCommand(ctx))
	return indexCmd
}

func newIndexBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build <guide-file>",
		Short: "Index a plain-text tasting guide for retrieval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var count int
			switch cfg.Retriever.Type {
			case "qdrant":
				count, err = buildVectorIndex(cmd.Context(), cfg, args[0])
			default:
				count, err = buildLocalIndex(cmd.Context(), cfg, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d guide entries\n", count)
			return nil
		},
	}
}

func buildLocalIndex(ctx context.Context, cfg *config.Config, guidePath string) (int, error) {
	store, err := guide.Open(cfg.Retriever.IndexPath, matchingRules(cfg))
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.IngestFile(ctx, guidePath)
}

// buildVectorIndex embeds every guide entry and upserts it into the
// configured qdrant collection, created on first use.
func buildVectorIndex(ctx context.Context, cfg *config.Config, guidePath string) (int, error) {
	entries, err := guide.ParseGuideFile(guidePath)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	embedder := ollama.NewClient(
		ollama.WithBaseURL(cfg.Retriever.OllamaURL),
		ollama.WithModel(cfg.Retriever.EmbedModel),
	)
	index := qdrant.NewClient(qdrant.Config{
		URL:        cfg.Retriever.QdrantURL,
		APIKey:     cfg.Retriever.QdrantAPIKey,
		Collection: cfg.Retriever.QdrantCollection,
	})

	points := make([]qdrant.Point, 0, len(entries))
	for _, entry := range entries {
		vector, err := embedder.Embed(ctx, entry.Content)
		if err != nil {
			return 0, fmt.Errorf("embed guide entry %q: %w", entry.Name, err)
		}
		points = append(points, qdrant.Point{
			ID:     uuid.NewString(),
			Vector: vector,
			Text:   entry.Content,
		})
	}

	if err := index.Init(ctx, len(points[0].Vector)); err != nil {
		return 0, err
	}
	if err := index.Upsert(ctx, points); err != nil {
		return 0, err
	}
	return len(points), nil
}

func newIndexStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the size and location of the local guide index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := guide.Open(cfg.Retriever.IndexPath, matchingRules(cfg))
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Index path: %s\n", store.Path())
			fmt.Fprintf(out, "Entries: %d\n", count)
			return nil
		},
	}
}
