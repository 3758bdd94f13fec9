// Package domain defines the core business entities for docscribe.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One source file after text extraction
//   - Chunk: A bounded, searchable span of a document
//   - RetrievalResult: A ranked hit handed to the generator
//   - IngestReport: What the loader kept and what it skipped
//   - Session: Explicit per-user conversation context
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
