// Package code extracts text from source code files.
package code

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// languages maps source extensions to language names.
var languages = map[string]string{
	".py":   "python",
	".go":   "go",
	".js":   "javascript",
	".ts":   "typescript",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".rs":   "rust",
	".rb":   "ruby",
	".sh":   "shell",
}

// Normaliser handles source code. The text is kept verbatim.
type Normaliser struct{}

// New creates a new source code normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser produces.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatCode
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	exts := make([]string, 0, len(languages))
	for ext := range languages {
		exts = append(exts, ext)
	}
	return exts
}

// Language returns the language name for a file extension, or "" if unknown.
func Language(ext string) string {
	return languages[ext]
}

// Normalise converts a source file to a normalised document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrExtractionFailed, raw.Path)
	}

	ext := domain.Extension(raw.Path)

	return &driven.NormaliseResult{
		Document: domain.Document{
			Path:    raw.Path,
			Title:   domain.TitleFromPath(raw.Path),
			Format:  domain.FormatCode,
			Content: string(raw.Content),
			Metadata: map[string]any{
				"language":  Language(ext),
				"extension": ext,
			},
		},
	}, nil
}
