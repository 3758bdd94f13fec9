// Package index holds the in-memory retrieval indexes.
//
// Both indexes are built once from the full chunk set and are read-only
// afterwards. A rebuild replaces all state; nothing is persisted.
//
//   - bm25: Okapi BM25 ranked keyword search
//   - flat: exact cosine nearest-neighbour search
package index
