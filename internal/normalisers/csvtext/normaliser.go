// Package csvtext renders CSV tables as searchable text.
//
// Each record becomes a block of "header: value" lines and records are
// separated by a blank line, so a record never straddles a paragraph.
package csvtext

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles comma-separated tables with a header row.
type Normaliser struct{}

// New creates a new CSV normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser produces.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatCSV
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".csv"}
}

// Normalise converts a CSV file to a normalised document.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r := csv.NewReader(bytes.NewReader(raw.Content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return result(raw, "", 0, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, raw.Path, err)
	}

	var b strings.Builder
	records := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, raw.Path, err)
		}

		if records > 0 {
			b.WriteString("\n\n")
		}
		writeRecord(&b, header, record)
		records++
	}

	return result(raw, b.String(), records, header), nil
}

func writeRecord(b *strings.Builder, header, record []string) {
	for i, value := range record {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(columnName(header, i))
		b.WriteString(": ")
		b.WriteString(value)
	}
}

// columnName returns the header for column i, or a positional name for
// columns beyond the header row.
func columnName(header []string, i int) string {
	if i < len(header) && strings.TrimSpace(header[i]) != "" {
		return strings.TrimSpace(header[i])
	}
	return "column " + strconv.Itoa(i+1)
}

func result(raw *domain.RawDocument, content string, records int, header []string) *driven.NormaliseResult {
	return &driven.NormaliseResult{
		Document: domain.Document{
			Path:    raw.Path,
			Title:   domain.TitleFromPath(raw.Path),
			Format:  domain.FormatCSV,
			Content: content,
			Metadata: map[string]any{
				"records": records,
				"columns": len(header),
			},
		},
	}
}
