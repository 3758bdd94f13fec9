package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/core/ports/driving"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// IndexFactory creates the stores that make up one build.
// Every Build starts from fresh instances so a failed build never
// touches the state that queries are reading.
type IndexFactory struct {
	ChunkStore   func(chunks []domain.Chunk) (driven.ChunkStore, error)
	KeywordIndex func() driven.KeywordIndex
	VectorIndex  func() driven.VectorIndex
}

// scoredChunk holds intermediate search results before hydration.
type scoredChunk struct {
	chunkID string
	score   float64
}

// searchState is one complete, immutable build.
type searchState struct {
	store    driven.ChunkStore
	keyword  driven.KeywordIndex
	semantic *SemanticIndex
}

// SearchService is the hybrid retriever: BM25 and embedding similarity
// fused with reciprocal rank fusion.
type SearchService struct {
	settings domain.SearchSettings
	loader   driving.LoaderService
	embedder driven.EmbeddingService
	factory  IndexFactory

	mu    sync.RWMutex
	state *searchState
}

// NewSearchService creates a search service.
// Invalid settings are rejected here, before any file is read.
func NewSearchService(
	settings domain.AppSettings,
	loader driving.LoaderService,
	embedder driven.EmbeddingService,
	factory IndexFactory,
) (*SearchService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if loader == nil || embedder == nil {
		return nil, fmt.Errorf("%w: loader and embedding service are required", domain.ErrConfiguration)
	}
	if factory.ChunkStore == nil || factory.KeywordIndex == nil || factory.VectorIndex == nil {
		return nil, fmt.Errorf("%w: incomplete index factory", domain.ErrConfiguration)
	}

	return &SearchService{
		settings: settings.Search,
		loader:   loader,
		embedder: embedder,
		factory:  factory,
	}, nil
}

// Build loads the given files and rebuilds every index from scratch.
// The new state replaces the old one only when every step succeeded.
func (s *SearchService) Build(ctx context.Context, paths []string) (domain.IngestReport, error) {
	if len(paths) == 0 {
		return domain.IngestReport{}, fmt.Errorf("%w: no source files given", domain.ErrEmptyCorpus)
	}

	logger.Section("Build Index")
	logger.Debug("Sources: %d files, embedding model %s", len(paths), s.embedder.ModelName())

	chunks, report, err := s.loader.Load(ctx, paths)
	if err != nil {
		return report, fmt.Errorf("load: %w", err)
	}
	if len(chunks) == 0 {
		return report, fmt.Errorf("%w: %d files, %d skipped", domain.ErrEmptyCorpus, report.Files, report.SkippedCount())
	}

	store, err := s.factory.ChunkStore(chunks)
	if err != nil {
		return report, fmt.Errorf("chunk store: %w", err)
	}

	chunks = store.Chunks(ctx)

	keyword := s.factory.KeywordIndex()
	if err := keyword.Build(ctx, chunks); err != nil {
		return report, fmt.Errorf("keyword index: %w", err)
	}
	logger.Debug("Keyword index: %d chunks", keyword.Len())

	semantic := NewSemanticIndex(s.embedder, s.factory.VectorIndex())
	if err := semantic.Build(ctx, chunks); err != nil {
		return report, fmt.Errorf("semantic index: %w", err)
	}
	logger.Debug("Semantic index: %d chunks", semantic.Len())

	s.mu.Lock()
	s.state = &searchState{
		store:    store,
		keyword:  keyword,
		semantic: semantic,
	}
	s.mu.Unlock()

	logger.Info("Indexed %d chunks from %d files", len(chunks), len(report.Loaded))
	return report, nil
}

// Search returns the fused ranking of keyword and semantic hits.
// Each index contributes up to opts.Limit hits, so at most twice that many
// results are returned.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.RetrievalResult, error) {
	st := s.current()
	if st == nil {
		return nil, domain.ErrNotInitialized
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievalResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.settings.TopK
	}

	keywordResults, vectorResults, err := s.hybridSearch(ctx, st, query, limit)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, err
	}

	merged := reciprocalRankFusion(s.settings.RRFK, keywordResults, vectorResults)
	logger.Debug("Merged %d keyword + %d vector hits into %d results",
		len(keywordResults), len(vectorResults), len(merged))

	results, err := hydrateResults(ctx, st.store, merged)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}

	logger.Info("Query %q: %d results", query, len(results))
	return results, nil
}

// SearchAndFormat runs Search with the default limit and renders the results
// as the text handed to the generator.
func (s *SearchService) SearchAndFormat(ctx context.Context, query string) (string, error) {
	results, err := s.Search(ctx, query, domain.SearchOptions{})
	if err != nil {
		return "", err
	}
	return FormatResults(query, results), nil
}

// Sources lists the ingested files of the current build.
func (s *SearchService) Sources(ctx context.Context) ([]domain.SourceSummary, error) {
	st := s.current()
	if st == nil {
		return nil, domain.ErrNotInitialized
	}
	return st.store.Sources(ctx), nil
}

// FormatResults renders results in the layout the generator expects.
func FormatResults(query string, results []domain.RetrievalResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You searched for \"%s\" and here are the results:\n\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "File: %s\nContent: %s\n\n", r.Source, r.Content)
	}
	return b.String()
}

func (s *SearchService) current() *searchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// hybridSearch runs the keyword and vector searches in parallel.
// Either failing fails the whole search.
func (s *SearchService) hybridSearch(
	ctx context.Context, st *searchState, query string, limit int,
) ([]scoredChunk, []scoredChunk, error) {
	var keywordHits []driven.SearchHit
	var vectorHits []driven.VectorHit
	var keywordErr, vectorErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		keywordHits, keywordErr = st.keyword.Search(ctx, query, limit)
	}()

	go func() {
		defer wg.Done()
		vectorHits, vectorErr = st.semantic.Search(ctx, query, limit)
	}()

	wg.Wait()

	if keywordErr != nil {
		return nil, nil, fmt.Errorf("keyword search: %w", keywordErr)
	}
	if vectorErr != nil {
		return nil, nil, fmt.Errorf("vector search: %w", vectorErr)
	}

	keywordResults := make([]scoredChunk, len(keywordHits))
	for i, hit := range keywordHits {
		keywordResults[i] = scoredChunk{chunkID: hit.ChunkID, score: hit.Score}
	}

	vectorResults := make([]scoredChunk, len(vectorHits))
	for i, hit := range vectorHits {
		vectorResults[i] = scoredChunk{chunkID: hit.ChunkID, score: hit.Similarity}
	}

	return keywordResults, vectorResults, nil
}

// reciprocalRankFusion merges ranked lists by summing 1/(k+rank), rank from 1.
// A chunk present in several lists appears once. Equal scores keep the
// order of first appearance, earlier lists first.
func reciprocalRankFusion(k int, lists ...[]scoredChunk) []scoredChunk {
	scores := make(map[string]float64)
	var order []string

	for _, list := range lists {
		for rank, chunk := range list {
			if _, seen := scores[chunk.chunkID]; !seen {
				order = append(order, chunk.chunkID)
			}
			scores[chunk.chunkID] += 1.0 / float64(k+rank+1)
		}
	}

	results := make([]scoredChunk, len(order))
	for i, id := range order {
		results[i] = scoredChunk{chunkID: id, score: scores[id]}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	return results
}

// hydrateResults attaches chunk text and source path to fused hits.
func hydrateResults(ctx context.Context, store driven.ChunkStore, chunks []scoredChunk) ([]domain.RetrievalResult, error) {
	results := make([]domain.RetrievalResult, 0, len(chunks))
	for _, sc := range chunks {
		chunk, err := store.GetChunk(ctx, sc.chunkID)
		if err != nil {
			return nil, fmt.Errorf("get chunk %s: %w", sc.chunkID, err)
		}
		results = append(results, domain.RetrievalResult{
			ChunkID: chunk.ID,
			Source:  chunk.Source,
			Content: chunk.Content,
			Score:   sc.score,
		})
	}
	return results, nil
}
