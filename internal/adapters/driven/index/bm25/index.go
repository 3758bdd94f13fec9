// Package bm25 implements an in-memory Okapi BM25 keyword index.
package bm25

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.KeywordIndex = (*Index)(nil)

// Default ranking parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Index ranks chunks against a query with Okapi BM25.
type Index struct {
	mu sync.RWMutex
	k1 float64
	b  float64

	built  bool
	ids    []string
	terms  []map[string]int
	lens   []int
	avgLen float64
	idf    map[string]float64
}

// Option configures the index.
type Option func(*Index)

// WithK1 sets the term frequency saturation parameter.
func WithK1(k1 float64) Option {
	return func(idx *Index) {
		if k1 >= 0 {
			idx.k1 = k1
		}
	}
}

// WithB sets the length normalisation parameter.
func WithB(b float64) Option {
	return func(idx *Index) {
		if b >= 0 && b <= 1 {
			idx.b = b
		}
	}
}

// New creates an empty index. Search fails until Build is called.
func New(opts ...Option) *Index {
	idx := &Index{k1: DefaultK1, b: DefaultB}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Tokenize lower-cases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Build replaces the index contents with the given chunks.
// An empty chunk set returns domain.ErrEmptyCorpus and leaves the index unchanged.
func (idx *Index) Build(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return domain.ErrEmptyCorpus
	}

	ids := make([]string, len(chunks))
	terms := make([]map[string]int, len(chunks))
	lens := make([]int, len(chunks))
	df := make(map[string]int)
	total := 0

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}

		tokens := Tokenize(chunk.Content)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for tok := range tf {
			df[tok]++
		}

		ids[i] = chunk.ID
		terms[i] = tf
		lens[i] = len(tokens)
		total += len(tokens)
	}

	n := float64(len(chunks))
	idf := make(map[string]float64, len(df))
	for tok, freq := range df {
		f := float64(freq)
		idf[tok] = math.Log((n-f+0.5)/(f+0.5) + 1)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.built = true
	idx.ids = ids
	idx.terms = terms
	idx.lens = lens
	idx.avgLen = float64(total) / n
	idx.idf = idf

	return nil
}

// Search returns up to limit chunks with a positive score, best first.
// Equal scores keep insertion order.
func (idx *Index) Search(_ context.Context, query string, limit int) ([]driven.SearchHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return nil, domain.ErrNotInitialized
	}
	if limit <= 0 {
		return nil, nil
	}

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var hits []driven.SearchHit
	for i, tf := range idx.terms {
		score := idx.score(tokens, tf, idx.lens[i])
		if score > 0 {
			hits = append(hits, driven.SearchHit{ChunkID: idx.ids[i], Score: score})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// score sums the BM25 contribution of every query token, repeats included.
func (idx *Index) score(query []string, tf map[string]int, length int) float64 {
	var score float64
	norm := 1 - idx.b
	if idx.avgLen > 0 {
		norm += idx.b * float64(length) / idx.avgLen
	}

	for _, tok := range query {
		f, ok := tf[tok]
		if !ok {
			continue
		}
		freq := float64(f)
		score += idx.idf[tok] * freq * (idx.k1 + 1) / (freq + idx.k1*norm)
	}
	return score
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}
