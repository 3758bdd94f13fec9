// Package hashing provides an in-process embedding service based on
// signed feature hashing.
//
// Each lower-cased word and each character trigram of a word is hashed
// into one of Dimensions buckets with a pseudo-random sign, and the
// resulting vector is L2-normalised. Texts sharing words or word pieces
// land close together, which is enough for local semantic-ish recall
// without a model download or network access.
package hashing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/custodia-labs/docscribe/internal/adapters/driven/index/bm25"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultDimensions = 384
	DefaultModel      = "hashing-384"

	wordWeight    = 1.0
	trigramWeight = 0.5
)

// EmbeddingService maps text to vectors without a model.
type EmbeddingService struct {
	model      string
	dimensions int
}

// NewEmbeddingService creates a hashing embedder.
// A non-positive dimension selects DefaultDimensions.
func NewEmbeddingService(model string, dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	if model == "" {
		model = fmt.Sprintf("hashing-%d", dimensions)
	}
	return &EmbeddingService{model: model, dimensions: dimensions}
}

// Embed generates a vector embedding for the given text.
// Text without any letters or digits maps to the zero vector.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acc := make([]float64, s.dimensions)
	for _, tok := range bm25.Tokenize(text) {
		s.add(acc, "w:"+tok, wordWeight)

		runes := []rune("<" + tok + ">")
		for i := 0; i+3 <= len(runes); i++ {
			s.add(acc, "t:"+string(runes[i:i+3]), trigramWeight)
		}
	}

	var sum float64
	for _, v := range acc {
		sum += v * v
	}

	vec := make([]float32, s.dimensions)
	if sum == 0 {
		return vec, nil
	}

	n := math.Sqrt(sum)
	for i, v := range acc {
		vec[i] = float32(v / n)
	}
	return vec, nil
}

func (s *EmbeddingService) add(acc []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := sum % uint64(s.dimensions)
	if sum>>63 == 1 {
		weight = -weight
	}
	acc[bucket] += weight
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: hashing: %v", domain.ErrEmbeddingFailed, err)
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model name, e.g. "hashing-384".
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
