package memory

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is the immutable chunk set of one index build.
// It is safe for concurrent reads.
type ChunkStore struct {
	chunks  []domain.Chunk
	byID    map[string]int
	sources []domain.SourceSummary
}

// NewChunkStore creates a store over chunks. Chunk IDs must be unique.
func NewChunkStore(chunks []domain.Chunk) (*ChunkStore, error) {
	s := &ChunkStore{
		chunks: make([]domain.Chunk, len(chunks)),
		byID:   make(map[string]int, len(chunks)),
	}
	copy(s.chunks, chunks)

	sourceIdx := make(map[string]int)
	for i, c := range s.chunks {
		if _, dup := s.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate chunk ID %s", domain.ErrInvalidInput, c.ID)
		}
		s.byID[c.ID] = i

		j, ok := sourceIdx[c.Source]
		if !ok {
			j = len(s.sources)
			sourceIdx[c.Source] = j
			s.sources = append(s.sources, domain.SourceSummary{Path: c.Source})
		}
		s.sources[j].Chunks++
	}

	return s, nil
}

// GetChunk retrieves a chunk by ID.
func (s *ChunkStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	chunk := s.chunks[i]
	return &chunk, nil
}

// Chunks returns a copy of every chunk in insertion order.
func (s *ChunkStore) Chunks(_ context.Context) []domain.Chunk {
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Sources returns the ingested sources with chunk counts, in first-seen order.
func (s *ChunkStore) Sources(_ context.Context) []domain.SourceSummary {
	out := make([]domain.SourceSummary, len(s.sources))
	copy(out, s.sources)
	return out
}

// Len returns the number of chunks.
func (s *ChunkStore) Len() int {
	return len(s.chunks)
}
