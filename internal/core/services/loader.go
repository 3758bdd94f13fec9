package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/core/ports/driving"
	"github.com/custodia-labs/docscribe/internal/logger"
)

// Ensure DocumentLoader implements the interface.
var _ driving.LoaderService = (*DocumentLoader)(nil)

// DocumentLoader reads source files, extracts their text and chunks it.
type DocumentLoader struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
	readFile func(string) ([]byte, error)
}

// NewDocumentLoader creates a loader that dispatches files through registry
// and chunks the extracted text with pipeline.
func NewDocumentLoader(registry driven.NormaliserRegistry, pipeline driven.PostProcessorPipeline) *DocumentLoader {
	return &DocumentLoader{
		registry: registry,
		pipeline: pipeline,
		readFile: os.ReadFile,
	}
}

// Load extracts and chunks each file in order.
//
// Unsupported and unreadable files are logged, recorded in the report and
// skipped. A path listed more than once is loaded once. Only context
// cancellation aborts the load.
func (l *DocumentLoader) Load(ctx context.Context, paths []string) ([]domain.Chunk, domain.IngestReport, error) {
	logger.Section("Load Documents")

	var (
		report domain.IngestReport
		chunks []domain.Chunk
		seen   = make(map[string]struct{}, len(paths))
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		if _, ok := seen[path]; ok {
			logger.Debug("Skipping %s: listed more than once", path)
			continue
		}
		seen[path] = struct{}{}
		report.Files++

		fileChunks, err := l.loadFile(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, report, ctxErr
			}
			logger.Warn("Skipping %s: %v", path, err)
			report.Skipped = append(report.Skipped, domain.SkippedFile{Path: path, Err: err})
			continue
		}

		logger.Debug("Loaded %s: %d chunks", path, len(fileChunks))
		chunks = append(chunks, fileChunks...)
		report.Loaded = append(report.Loaded, path)
		report.Chunks += len(fileChunks)
	}

	logger.Info("Loaded %d chunks from %d files (%d skipped)",
		report.Chunks, len(report.Loaded), report.SkippedCount())

	return chunks, report, nil
}

func (l *DocumentLoader) loadFile(ctx context.Context, path string) ([]domain.Chunk, error) {
	if !l.registry.Supports(path) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, domain.Extension(path))
	}

	content, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrExtractionFailed, err)
	}

	result, err := l.registry.Normalise(ctx, &domain.RawDocument{Path: path, Content: content})
	if err != nil {
		return nil, err
	}

	doc := result.Document
	if strings.TrimSpace(doc.Content) == "" {
		return nil, fmt.Errorf("%w: no text extracted", domain.ErrExtractionFailed)
	}

	chunks, err := l.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("chunk: %w", err)
	}
	return chunks, nil
}
