package driven

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// ChunkStore holds the chunk set shared by the keyword and vector indexes.
// Both indexes refer to chunks by ID; the text lives here once.
type ChunkStore interface {
	// GetChunk retrieves a chunk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// Chunks returns every chunk in insertion order.
	Chunks(ctx context.Context) []domain.Chunk

	// Sources returns the ingested sources with their chunk counts, in insertion order.
	Sources(ctx context.Context) []domain.SourceSummary

	// Len returns the number of chunks.
	Len() int
}
