// Package flat implements an exact in-memory vector index.
//
// Every search compares the query against all stored vectors, so results
// are exact and deterministic. It suits corpora of a few hundred thousand
// chunks; larger ones need an approximate index.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.VectorIndex = (*Index)(nil)

// Index provides exact cosine similarity search.
type Index struct {
	mu        sync.RWMutex
	built     bool
	dimension int
	ids       []string
	vectors   [][]float32
	norms     []float64
}

// New creates an empty index. Search fails until Build is called.
func New() *Index {
	return &Index{}
}

// Build replaces the index contents. All vectors must share one dimension.
func (idx *Index) Build(ctx context.Context, entries []driven.VectorEntry) error {
	if len(entries) == 0 {
		return domain.ErrEmptyCorpus
	}

	dimension := len(entries[0].Vector)
	if dimension == 0 {
		return fmt.Errorf("%w: empty vector for chunk %s", domain.ErrInvalidInput, entries[0].ChunkID)
	}

	ids := make([]string, len(entries))
	vectors := make([][]float32, len(entries))
	norms := make([]float64, len(entries))

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(e.Vector) != dimension {
			return fmt.Errorf("%w: chunk %s has dimension %d, want %d",
				domain.ErrInvalidInput, e.ChunkID, len(e.Vector), dimension)
		}

		vec := make([]float32, dimension)
		copy(vec, e.Vector)

		ids[i] = e.ChunkID
		vectors[i] = vec
		norms[i] = norm(vec)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.built = true
	idx.dimension = dimension
	idx.ids = ids
	idx.vectors = vectors
	idx.norms = norms

	return nil
}

// Search returns the k most similar vectors, best first.
// Equal similarities keep insertion order. Zero vectors have similarity 0.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return nil, domain.ErrNotInitialized
	}
	if k <= 0 {
		return nil, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query dimension %d, want %d", domain.ErrInvalidInput, len(query), idx.dimension)
	}

	qnorm := norm(query)
	hits := make([]driven.VectorHit, len(idx.ids))

	for i, vec := range idx.vectors {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var sim float64
		if qnorm > 0 && idx.norms[i] > 0 {
			sim = dot(query, vec) / (qnorm * idx.norms[i])
		}
		hits[i] = driven.VectorHit{ChunkID: idx.ids[i], Similarity: sim}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Dimensions returns the vector size, or 0 before Build.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
