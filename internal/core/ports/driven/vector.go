package driven

import "context"

// VectorIndex provides similarity search over embedding vectors.
// It is built once and is read-only afterwards.
type VectorIndex interface {
	// Build replaces the index contents with the given vectors.
	Build(ctx context.Context, entries []VectorEntry) error

	// Search finds the k nearest neighbours to the query vector.
	// Returns domain.ErrNotInitialized before Build.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Dimensions returns the vector size of the index, or 0 before Build.
	Dimensions() int

	// Len returns the number of indexed vectors.
	Len() int
}

// VectorEntry pairs a chunk with its embedding.
type VectorEntry struct {
	// ChunkID identifies the chunk.
	ChunkID string

	// Vector is the chunk embedding.
	Vector []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (-1 to 1).
	Similarity float64
}
