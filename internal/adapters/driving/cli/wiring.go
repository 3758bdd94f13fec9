package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docscribe/internal/adapters/driven/ai"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/index/bm25"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/index/flat"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/core/services"
	"github.com/custodia-labs/docscribe/internal/logger"
	"github.com/custodia-labs/docscribe/internal/normalisers"
	"github.com/custodia-labs/docscribe/internal/postprocessors"
)

// newLoader builds the document loader with every extractor and a chunker
// configured from the chunking settings.
func newLoader(chunking domain.ChunkingSettings) (*services.DocumentLoader, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	pipeline, err := postprocessors.BuildPipeline(registry, domain.PipelineConfigFor(chunking))
	if err != nil {
		return nil, err
	}

	return services.NewDocumentLoader(normalisers.NewDefaultRegistry(), pipeline), nil
}

// indexFactory returns the in-memory store and index constructors.
func indexFactory() services.IndexFactory {
	return services.IndexFactory{
		ChunkStore: func(chunks []domain.Chunk) (driven.ChunkStore, error) {
			return memory.NewChunkStore(chunks)
		},
		KeywordIndex: func() driven.KeywordIndex { return bm25.New() },
		VectorIndex:  func() driven.VectorIndex { return flat.New() },
	}
}

// newSearchService wires the retriever for the given settings.
// The embedding backend must answer a ping before any file is read.
// The returned function releases the embedding backend.
func newSearchService(ctx context.Context, settings *domain.AppSettings) (*services.SearchService, func(), error) {
	loader, err := newLoader(settings.Chunking)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(ctx, settings.Embedding)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := embedder.Close(); err != nil {
			logger.Warn("closing embedding backend: %v", err)
		}
	}

	svc, err := services.NewSearchService(*settings, loader, embedder, indexFactory())
	if err != nil {
		release()
		return nil, nil, err
	}

	return svc, release, nil
}

// printSkipped reports the files a load dropped, with their reasons.
func printSkipped(cmd *cobra.Command, report domain.IngestReport) {
	if report.SkippedCount() == 0 {
		return
	}
	cmd.PrintErrf("%d files skipped:\n", report.SkippedCount())
	for _, skipped := range report.Skipped {
		cmd.PrintErrf("  %s\n", skipped)
	}
}
