package driven

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// Normaliser extracts plain text from raw file bytes.
// Each normaliser handles one format and a set of file extensions.
type Normaliser interface {
	// Format returns the format this normaliser produces.
	Format() domain.Format

	// SupportedExtensions returns the lower-cased extensions handled, including the dot.
	SupportedExtensions() []string

	// Normalise transforms a raw file into a document with Content populated.
	// Failures wrap domain.ErrExtractionFailed.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Note: Normalisation only produces a Document with Content.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}
