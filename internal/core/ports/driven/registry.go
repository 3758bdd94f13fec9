package driven

import (
	"context"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a file.
// It dispatches on the lower-cased file extension.
type NormaliserRegistry interface {
	// Normalise transforms a raw file using the normaliser registered for its extension.
	// Returns an error wrapping domain.ErrUnsupportedFormat if none is registered.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// Supports reports whether a normaliser is registered for the path's extension.
	Supports(path string) bool

	// SupportedExtensions returns all extensions that can be normalised.
	SupportedExtensions() []string
}
