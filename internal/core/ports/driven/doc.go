// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Normaliser: Extracts plain text from one file format
//   - NormaliserRegistry: Dispatches a file to its normaliser by extension
//   - PostProcessor / PostProcessorPipeline: Splits document text into chunks
//   - EmbeddingService: Maps text to fixed-length vectors
//   - EmbeddingCache: Memoises embedding vectors across runs
//   - KeywordIndex: BM25 ranked retrieval over chunk text
//   - VectorIndex: Nearest-neighbour search over chunk vectors
//   - ChunkStore: The shared, immutable chunk set of one build
//   - ConfigStore: Application configuration
//   - PromptStore: User-editable prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
