// Package cache provides an EmbeddingService decorator that memoises
// vectors in a driven.EmbeddingCache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService serves embeddings from the cache and falls through to
// the wrapped service for misses. Cache failures are logged and ignored.
type EmbeddingService struct {
	inner driven.EmbeddingService
	cache driven.EmbeddingCache
}

// New wraps inner with cache.
func New(inner driven.EmbeddingService, cache driven.EmbeddingCache) *EmbeddingService {
	return &EmbeddingService{inner: inner, cache: cache}
}

// HashText returns the cache key for text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per text, embedding only uncached texts.
// Duplicate texts are embedded once.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	model := s.inner.ModelName()

	hashes := make([]string, len(texts))
	for i, t := range texts {
		hashes[i] = HashText(t)
	}

	cached, err := s.cache.GetEmbeddings(ctx, model, hashes)
	if err != nil {
		logger.Warn("embedding cache lookup failed: %v", err)
		cached = nil
	}

	var (
		missTexts  []string
		missHashes []string
		seen       = make(map[string]bool)
	)
	for i, h := range hashes {
		if vec, ok := cached[h]; ok && len(vec) == s.inner.Dimensions() {
			continue
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		missTexts = append(missTexts, texts[i])
		missHashes = append(missHashes, h)
	}

	fresh := make(map[string][]float32, len(missTexts))
	if len(missTexts) > 0 {
		vectors, err := s.inner.EmbedBatch(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missTexts) {
			return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", domain.ErrEmbeddingFailed, len(vectors), len(missTexts))
		}
		for i, vec := range vectors {
			fresh[missHashes[i]] = vec
		}

		if err := s.cache.PutEmbeddings(ctx, model, fresh); err != nil {
			logger.Warn("embedding cache store failed: %v", err)
		}
	}

	logger.Debug("embeddings: %d cached, %d computed", len(texts)-len(missTexts), len(missTexts))

	out := make([][]float32, len(texts))
	for i, h := range hashes {
		if vec, ok := fresh[h]; ok {
			out[i] = vec
		} else {
			out[i] = cached[h]
		}
	}
	return out, nil
}

// Dimensions returns the wrapped service's vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the wrapped service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping checks the wrapped service.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the wrapped service and the cache.
func (s *EmbeddingService) Close() error {
	innerErr := s.inner.Close()
	if err := s.cache.Close(); err != nil {
		return err
	}
	return innerErr
}
