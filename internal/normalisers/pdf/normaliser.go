// Package pdf extracts the text layer of PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser produces.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatPDF
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise converts a PDF document to a normalised document.
// Page texts are joined with blank lines. Pages whose text cannot be
// decoded are skipped.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	pages, total, err := extractPages(ctx, raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, raw.Path, err)
	}

	content := joinPages(pages)

	return &driven.NormaliseResult{
		Document: domain.Document{
			Path:    raw.Path,
			Title:   extractTitle(content, raw.Path),
			Format:  domain.FormatPDF,
			Content: content,
			Metadata: map[string]any{
				"pages": total,
			},
		},
	}, nil
}

// extractPages returns the plain text of every readable page and the page count.
// The PDF parser panics on some malformed inputs; that is reported as an error.
func extractPages(ctx context.Context, content []byte) (pages []string, total int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, total, err = nil, 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, 0, err
	}

	total = reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("pdf: skipping page %d: %v", i, err)
			continue
		}
		pages = append(pages, text)
	}

	return pages, total, nil
}

// joinPages joins non-blank page texts with a blank line.
func joinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// maxTitleRunes caps the length of a title taken from the text.
const maxTitleRunes = 100

// extractTitle uses the first non-empty line of text, falling back to the file name.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > maxTitleRunes {
			line = string(runes[:maxTitleRunes])
		}
		return line
	}
	return domain.TitleFromPath(path)
}
