package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorIndex which stores and searches vectors.
// EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Hashing (in-process, no model download)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one per input, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	// Every returned vector has exactly this length.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingCache memoises embeddings keyed by model and text hash.
type EmbeddingCache interface {
	// GetEmbeddings returns cached vectors for the given hashes.
	// Missing hashes are absent from the map.
	GetEmbeddings(ctx context.Context, model string, hashes []string) (map[string][]float32, error)

	// PutEmbeddings stores vectors keyed by hash.
	PutEmbeddings(ctx context.Context, model string, vectors map[string][]float32) error

	// Close releases resources.
	Close() error
}
