package driven

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// KeywordIndex provides ranked term-frequency search over chunk text.
// It is built once from the full chunk set and is read-only afterwards.
type KeywordIndex interface {
	// Build replaces the index contents with the given chunks.
	Build(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to limit matching chunk IDs, best first.
	// Returns domain.ErrNotInitialized before Build.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Len returns the number of indexed chunks.
	Len() int
}

// SearchHit represents a search result from the engine.
type SearchHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the relevance score (e.g., BM25).
	Score float64
}
