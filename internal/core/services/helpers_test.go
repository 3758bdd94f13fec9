package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/adapters/driven/embedding/hashing"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/index/bm25"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/index/flat"
	"github.com/custodia-labs/docscribe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/normalisers"
	"github.com/custodia-labs/docscribe/internal/postprocessors"
)

// writeFiles creates the given files under a temp dir and returns their paths
// in the order given.
func writeFiles(t *testing.T, files ...[2]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(files))
	for i, f := range files {
		path := filepath.Join(dir, f[0])
		require.NoError(t, os.WriteFile(path, []byte(f[1]), 0600))
		paths[i] = path
	}
	return paths
}

func newTestLoader(t *testing.T, chunking domain.ChunkingSettings) *DocumentLoader {
	t.Helper()
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.BuildPipeline(registry, domain.PipelineConfigFor(chunking))
	require.NoError(t, err)
	return NewDocumentLoader(normalisers.NewDefaultRegistry(), pipeline)
}

func testIndexFactory() IndexFactory {
	return IndexFactory{
		ChunkStore: func(chunks []domain.Chunk) (driven.ChunkStore, error) {
			return memory.NewChunkStore(chunks)
		},
		KeywordIndex: func() driven.KeywordIndex { return bm25.New() },
		VectorIndex:  func() driven.VectorIndex { return flat.New() },
	}
}

func newTestSearchService(t *testing.T, embedder driven.EmbeddingService) *SearchService {
	t.Helper()
	settings := domain.DefaultAppSettings()
	if embedder == nil {
		embedder = hashing.NewEmbeddingService("", 256)
	}
	svc, err := NewSearchService(settings, newTestLoader(t, settings.Chunking), embedder, testIndexFactory())
	require.NoError(t, err)
	return svc
}

// stubEmbedder returns canned vectors or an error.
type stubEmbedder struct {
	dims    int
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := s.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = make([]float32, s.dims)
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return s.dims }
func (s *stubEmbedder) ModelName() string { return "stub" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error { return nil }
