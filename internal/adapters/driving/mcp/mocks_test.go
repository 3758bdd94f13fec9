package mcp

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	formatted string
	sources   []domain.SourceSummary
	err       error
	queries   []string
}

func (m *mockSearchService) Build(_ context.Context, _ []string) (domain.IngestReport, error) {
	return domain.IngestReport{}, m.err
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.RetrievalResult, error) {
	return nil, m.err
}

func (m *mockSearchService) SearchAndFormat(_ context.Context, query string) (string, error) {
	m.queries = append(m.queries, query)
	return m.formatted, m.err
}

func (m *mockSearchService) Sources(_ context.Context) ([]domain.SourceSummary, error) {
	return m.sources, m.err
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct {
	template string
	err      error
}

func (m *mockPromptStore) Load(_ string) (string, error) { return m.template, m.err }
func (m *mockPromptStore) Reload() {}
func (m *mockPromptStore) Dir() string { return "" }
