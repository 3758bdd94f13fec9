package driving

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// SearchService provides hybrid retrieval to external actors.
type SearchService interface {
	// Build loads the given files and builds both indexes from scratch.
	// Queries issued before a successful Build fail with domain.ErrNotInitialized.
	Build(ctx context.Context, paths []string) (domain.IngestReport, error)

	// Search returns the fused ranking of keyword and semantic hits.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.RetrievalResult, error)

	// SearchAndFormat runs Search with default options and renders the results
	// as the text payload handed to the generator.
	SearchAndFormat(ctx context.Context, query string) (string, error)

	// Sources lists the ingested source files of the current build.
	Sources(ctx context.Context) ([]domain.SourceSummary, error)
}
