package driving

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// LoaderService turns source files into chunks.
type LoaderService interface {
	// Load extracts and chunks each file in order.
	// Per-file failures are recorded in the report, not returned.
	Load(ctx context.Context, paths []string) ([]domain.Chunk, domain.IngestReport, error)
}
