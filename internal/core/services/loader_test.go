package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

func TestDocumentLoader_Load(t *testing.T) {
	paths := writeFiles(t,
		[2]string{"main.go", "package main\n\nfunc main() {}\n"},
		[2]string{"notes.md", "# Notes\n\nSome notes."},
	)
	loader := newTestLoader(t, domain.DefaultAppSettings().Chunking)

	chunks, report, err := loader.Load(context.Background(), paths)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, paths[0], chunks[0].Source)
	assert.Equal(t, paths[1], chunks[1].Source)
	assert.Equal(t, "code", chunks[0].Metadata["format"])
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, paths, report.Loaded)
	assert.Equal(t, 2, report.Chunks)
	assert.Empty(t, report.Skipped)
}

func TestDocumentLoader_Load_ChunksLongDocuments(t *testing.T) {
	paths := writeFiles(t, [2]string{"long.txt", "aaaa bbbb cccc dddd eeee ffff gggg"})
	loader := newTestLoader(t, domain.ChunkingSettings{Size: 10, Overlap: 2})

	chunks, report, err := loader.Load(context.Background(), paths)

	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	assert.Equal(t, len(chunks), report.Chunks)
	for i, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Content)), 10)
		assert.Equal(t, i, c.Position)
	}
}

func TestDocumentLoader_Load_SkipsUnusableFiles(t *testing.T) {
	paths := writeFiles(t,
		[2]string{"tool.exe", "MZ"},
		[2]string{"data.json", "{not json"},
		[2]string{"empty.txt", "   \n\t"},
		[2]string{"ok.txt", "useful text"},
	)
	missing := filepath.Join(filepath.Dir(paths[0]), "missing.txt")
	paths = append(paths, missing)
	loader := newTestLoader(t, domain.DefaultAppSettings().Chunking)

	chunks, report, err := loader.Load(context.Background(), paths)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "useful text", chunks[0].Content)
	assert.Equal(t, 5, report.Files)
	assert.Equal(t, []string{paths[3]}, report.Loaded)
	require.Equal(t, 4, report.SkippedCount())

	tests := []struct {
		path string
		want error
	}{
		{paths[0], domain.ErrUnsupportedFormat},
		{paths[1], domain.ErrExtractionFailed},
		{paths[2], domain.ErrExtractionFailed},
		{missing, domain.ErrExtractionFailed},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.path, report.Skipped[i].Path)
		assert.True(t, errors.Is(report.Skipped[i].Err, tt.want), "%s: %v", tt.path, report.Skipped[i].Err)
	}
}

func TestDocumentLoader_Load_UnsupportedFileIsNotRead(t *testing.T) {
	loader := newTestLoader(t, domain.DefaultAppSettings().Chunking)
	read := 0
	loader.readFile = func(string) ([]byte, error) {
		read++
		return []byte("text"), nil
	}

	_, report, err := loader.Load(context.Background(), []string{"/nowhere/archive.zip"})

	require.NoError(t, err)
	assert.Equal(t, 0, read)
	assert.Equal(t, 1, report.SkippedCount())
}

func TestDocumentLoader_Load_RepeatedPathLoadedOnce(t *testing.T) {
	paths := writeFiles(t,
		[2]string{"a.txt", "alpha"},
		[2]string{"b.txt", "beta"},
	)
	loader := newTestLoader(t, domain.DefaultAppSettings().Chunking)

	chunks, report, err := loader.Load(context.Background(), []string{paths[0], paths[1], paths[0]})

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, paths[0], chunks[0].Source)
	assert.Equal(t, paths[1], chunks[1].Source)
	assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, paths, report.Loaded)
	assert.Empty(t, report.Skipped)
}

func TestDocumentLoader_Load_Empty(t *testing.T) {
	loader := newTestLoader(t, domain.DefaultAppSettings().Chunking)

	chunks, report, err := loader.Load(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, chunks)
	assert.Equal(t, 0, report.Files)
}

func TestDocumentLoader_Load_Cancelled(t *testing.T) {
	paths := writeFiles(t, [2]string{"a.txt", "alpha"})
	loader := newTestLoader(t, domain.DefaultAppSettings().Chunking)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks, _, err := loader.Load(ctx, paths)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, chunks)
}

func TestDocumentLoader_Load_Deterministic(t *testing.T) {
	paths := writeFiles(t, [2]string{"a.txt", "one two three four five six seven"})
	loader := newTestLoader(t, domain.ChunkingSettings{Size: 12, Overlap: 3})

	first, _, err := loader.Load(context.Background(), paths)
	require.NoError(t, err)
	second, _, err := loader.Load(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
