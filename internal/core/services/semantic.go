package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// embedBatchSize is the number of chunk texts sent per EmbedBatch call.
const embedBatchSize = 64

// SemanticIndex embeds chunks and answers nearest-neighbour queries.
type SemanticIndex struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewSemanticIndex creates a semantic index over the given embedder and vector index.
func NewSemanticIndex(embedder driven.EmbeddingService, index driven.VectorIndex) *SemanticIndex {
	return &SemanticIndex{
		embedder: embedder,
		index:    index,
	}
}

// Build embeds every chunk and replaces the vector index contents.
// On failure the previous contents stay searchable.
func (s *SemanticIndex) Build(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return domain.ErrEmptyCorpus
	}

	dims := s.embedder.Dimensions()
	entries := make([]driven.VectorEntry, 0, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: chunks %d-%d: %w", domain.ErrEmbeddingFailed, start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("%w: got %d vectors for %d chunks", domain.ErrEmbeddingFailed, len(vectors), len(batch))
		}

		for i, vec := range vectors {
			if len(vec) != dims {
				return fmt.Errorf("%w: chunk %s has dimension %d, want %d",
					domain.ErrEmbeddingFailed, batch[i].ID, len(vec), dims)
			}
			entries = append(entries, driven.VectorEntry{ChunkID: batch[i].ID, Vector: vec})
		}

		logger.Debug("Embedded %d/%d chunks", end, len(chunks))
	}

	if err := s.index.Build(ctx, entries); err != nil {
		return fmt.Errorf("build vector index: %w", err)
	}
	return nil
}

// Search embeds text and returns up to k nearest chunks, most similar first.
func (s *SemanticIndex) Search(ctx context.Context, text string, k int) ([]driven.VectorHit, error) {
	if s.index.Dimensions() == 0 {
		return nil, domain.ErrNotInitialized
	}
	if k <= 0 {
		return nil, nil
	}

	query, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", domain.ErrEmbeddingFailed, err)
	}

	return s.index.Search(ctx, query, k)
}

// Len returns the number of indexed chunks.
func (s *SemanticIndex) Len() int {
	return s.index.Len()
}
