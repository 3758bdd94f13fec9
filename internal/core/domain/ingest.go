package domain

import "fmt"

// SkippedFile records a file the loader could not use.
type SkippedFile struct {
	// Path is the file path.
	Path string

	// Err is the reason, wrapping ErrUnsupportedFormat or ErrExtractionFailed.
	Err error
}

// String returns "path: reason".
func (s SkippedFile) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// IngestReport summarises a load over a set of paths.
type IngestReport struct {
	// Files is the number of distinct paths offered to the loader.
	Files int

	// Loaded lists the paths that produced at least one chunk, in input order.
	Loaded []string

	// Skipped lists the paths that were dropped, in input order.
	Skipped []SkippedFile

	// Chunks is the total number of chunks produced.
	Chunks int
}

// SkippedCount returns the number of skipped files.
func (r IngestReport) SkippedCount() int {
	return len(r.Skipped)
}
