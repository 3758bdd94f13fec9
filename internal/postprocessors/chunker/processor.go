// Package chunker provides a recursive-boundary text chunking processor.
package chunker

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// separators are tried coarsest first: paragraph, line, word.
// When none fits the window the text is cut at an arbitrary character.
var separators = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(" "),
}

// chunkNamespace seeds the name-based chunk IDs.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("docscribe/chunk"))

// Processor splits document content into bounded, overlapping chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the maximum chunk length in characters.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the number of characters shared by consecutive chunks.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
// Chunk IDs depend only on the document path and position, so re-running
// over the same input yields the same chunks.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	pieces := p.Split(doc.Content)
	chunks := make([]domain.Chunk, 0, len(pieces))

	for position, piece := range pieces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks = append(chunks, domain.Chunk{
			ID:       ChunkID(doc.Path, position),
			Source:   doc.Path,
			Content:  piece,
			Position: position,
			Metadata: map[string]any{
				"title":  doc.Title,
				"format": doc.Format.String(),
			},
		})
	}

	return chunks, nil
}

// ChunkID returns the stable identifier of the chunk at position in the file at path.
func ChunkID(path string, position int) string {
	return uuid.NewSHA1(chunkNamespace, []byte(path+"#"+strconv.Itoa(position))).String()
}

// Split cuts text into pieces of at most chunkSize characters.
//
// Each cut is placed just after the last occurrence of the coarsest
// separator inside the window, and the trailing overlap characters of a
// piece are repeated at the start of the next one.
func (p *Processor) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	var pieces []string
	start := 0

	for {
		if n-start <= p.chunkSize {
			return append(pieces, string(runes[start:]))
		}

		end := cutPoint(runes, start, start+p.overlap, start+p.chunkSize)
		pieces = append(pieces, string(runes[start:end]))

		// end > start+overlap, so this always advances
		start = end - p.overlap
	}
}

// cutPoint returns a cut position in (lo, hi].
// Separators lying before start are never considered.
func cutPoint(runes []rune, start, lo, hi int) int {
	for _, sep := range separators {
		width := len(sep)
		for i := hi - width; i >= start && i+width > lo; i-- {
			if hasPrefixAt(runes, i, sep) {
				return i + width
			}
		}
	}
	return hi
}

func hasPrefixAt(runes []rune, i int, sep []rune) bool {
	if i+len(sep) > len(runes) {
		return false
	}
	for j, r := range sep {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
