package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrUnsupportedFormat indicates a file extension no extractor handles.
	// The file is skipped and ingestion continues.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed indicates a recognised file could not be parsed.
	// The file is skipped and ingestion continues.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrEmptyCorpus indicates there was nothing to index.
	ErrEmptyCorpus = errors.New("no chunks to index")

	// Retrieval Errors.

	// ErrConfiguration indicates missing or invalid settings.
	// It is raised before any file is read.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotInitialized indicates a query against an index that was never built.
	ErrNotInitialized = errors.New("index not initialized")

	// ErrEmbeddingFailed indicates the embedding backend could not produce vectors.
	// Index construction is aborted and no partial index is kept.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// Session Errors.

	// ErrSessionClosed indicates the session has been torn down.
	ErrSessionClosed = errors.New("session closed")
)
