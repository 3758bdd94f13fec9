// Package sqlite provides a SQLite-backed embedding cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements driven.EmbeddingCache:
// vectors keyed by embedding model and the SHA-256 of the embedded text.
//
// Only embedding provider outputs are stored. Indexes are always rebuilt in
// memory from the source files.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database lives at <cache_dir>/embeddings.db.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
