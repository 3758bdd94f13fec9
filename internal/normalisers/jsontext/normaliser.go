// Package jsontext renders JSON documents as searchable text.
package jsontext

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles JSON files.
//
// A top-level array yields one record per element; any other value is a
// single record. Records are compact JSON, one paragraph each.
type Normaliser struct{}

// New creates a new JSON normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser produces.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatJSON
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".json"}
}

// Normalise converts a JSON file to a normalised document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !gjson.ValidBytes(raw.Content) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", domain.ErrExtractionFailed, raw.Path)
	}

	root := gjson.ParseBytes(raw.Content)

	var records []string
	if root.IsArray() {
		root.ForEach(func(_, value gjson.Result) bool {
			records = append(records, compact(value))
			return true
		})
	} else {
		records = append(records, compact(root))
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Path:    raw.Path,
			Title:   domain.TitleFromPath(raw.Path),
			Format:  domain.FormatJSON,
			Content: strings.Join(records, "\n\n"),
			Metadata: map[string]any{
				"records": len(records),
			},
		},
	}, nil
}

func compact(value gjson.Result) string {
	return value.Get("@ugly").Raw
}
