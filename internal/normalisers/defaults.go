package normalisers

import (
	"github.com/custodia-labs/docscribe/internal/normalisers/code"
	"github.com/custodia-labs/docscribe/internal/normalisers/csvtext"
	"github.com/custodia-labs/docscribe/internal/normalisers/docx"
	"github.com/custodia-labs/docscribe/internal/normalisers/jsontext"
	"github.com/custodia-labs/docscribe/internal/normalisers/pdf"
	"github.com/custodia-labs/docscribe/internal/normalisers/plaintext"
)

// RegisterDefaults registers all built-in normalisers with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(code.New())
	r.Register(csvtext.New())
	r.Register(plaintext.New())
	r.Register(jsontext.New())
}

// NewDefaultRegistry returns a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
