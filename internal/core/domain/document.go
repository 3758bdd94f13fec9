package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies how a source file's text is extracted.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatCode Format = "code"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatCode, FormatCSV, FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// Extension returns the lower-cased file extension of path, including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// RawDocument is a file as read from disk, before text extraction.
type RawDocument struct {
	// Path is the file path as supplied by the caller.
	Path string

	// Content is the raw bytes.
	Content []byte
}

// Document represents one source file after text extraction.
// Documents are discarded once they have been chunked.
type Document struct {
	// Path identifies the source file. It is the attribution for every chunk.
	Path string

	// Title is a human-readable name derived from the file.
	Title string

	// Format is the detected format.
	Format Format

	// Content is the full extracted text before chunking.
	Content string

	// Metadata contains extractor-specific key-value pairs.
	Metadata map[string]any
}

// Chunk represents a searchable unit within a document.
// Chunks are immutable once created.
type Chunk struct {
	// ID is a stable identifier derived from Source and Position.
	ID string

	// Source is the path of the originating document.
	// It is used for attribution only.
	Source string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// TitleFromPath derives a human-readable title from a file path.
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
