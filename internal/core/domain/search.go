package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the number of results requested from each index.
	// Zero means the configured default.
	Limit int
}

// RetrievalResult represents a single ranked hit.
type RetrievalResult struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// Source is the path of the document the chunk came from.
	Source string

	// Content is the chunk text.
	Content string

	// Score is the fused relevance score.
	Score float64
}

// SourceSummary describes one ingested source file.
type SourceSummary struct {
	// Path is the source file path.
	Path string

	// Chunks is the number of chunks indexed from the file.
	Chunks int
}
