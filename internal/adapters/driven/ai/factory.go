// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	embedcache "github.com/custodia-labs/docscribe/internal/adapters/driven/embedding/cache"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/embedding/hashing"
	ollamaembed "github.com/custodia-labs/docscribe/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/docscribe/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
func CreateAndValidateEmbeddingService(ctx context.Context, settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %s backend unreachable: %v", domain.ErrEmbeddingFailed, settings.Backend, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the embedding service selected by settings.
// When CacheDir is set the service is wrapped with the SQLite embedding cache.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings.Model == "" {
		settings.Model = domain.DefaultEmbeddingModels()[settings.Backend]
	}
	if settings.Dimensions == 0 {
		settings.Dimensions = domain.EmbeddingDimensions()[settings.Model]
	}

	var (
		svc driven.EmbeddingService
		err error
	)

	switch settings.Backend {
	case domain.EmbeddingBackendHashing:
		svc = hashing.NewEmbeddingService(settings.Model, settings.Dimensions)

	case domain.EmbeddingBackendOllama:
		svc = createOllamaEmbedding(settings)

	case domain.EmbeddingBackendOpenAI:
		svc, err = createOpenAIEmbedding(settings)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: unsupported embedding backend: %q", domain.ErrConfiguration, settings.Backend)
	}

	logger.Debug("embedding: backend=%s model=%s dims=%d", settings.Backend, svc.ModelName(), svc.Dimensions())

	if settings.CacheDir == "" {
		return svc, nil
	}

	store, err := sqlite.NewEmbeddingCache(settings.CacheDir)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: embedding cache: %v", domain.ErrConfiguration, err)
	}
	logger.Debug("embedding: cache at %s", store.Path())

	return embedcache.New(svc, store), nil
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := settings.Dimensions
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
	})
}
