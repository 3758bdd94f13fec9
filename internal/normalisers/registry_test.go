package normalisers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

type stubNormaliser struct {
	exts []string
	err  error
}

func (s *stubNormaliser) Format() domain.Format          { return domain.FormatText }
func (s *stubNormaliser) SupportedExtensions() []string { return s.exts }
func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &driven.NormaliseResult{Document: domain.Document{Path: raw.Path, Content: string(raw.Content)}}, nil
}

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{exts: []string{".txt"}})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{Path: "/a/B.TXT", Content: []byte("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hi", result.Document.Content)
	assert.True(t, r.Supports("notes.txt"))
	assert.False(t, r.Supports("notes.exe"))
}

func TestRegistry_UnsupportedExtension(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), &domain.RawDocument{Path: "/bin/tool.exe"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".exe")

	_, err = r.Normalise(context.Background(), &domain.RawDocument{Path: "/Makefile"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_WrapsNormaliserErrors(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{exts: []string{".txt"}, err: errors.New("boom")})

	_, err := r.Normalise(context.Background(), &domain.RawDocument{Path: "/a.txt"})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "boom")
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := NewRegistry().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	expected := []string{
		".c", ".cpp", ".csv", ".docx", ".go", ".h", ".java", ".js", ".json",
		".md", ".pdf", ".py", ".rb", ".rs", ".sh", ".ts", ".txt", ".yaml", ".yml",
	}
	assert.Equal(t, expected, r.SupportedExtensions())
}

func TestNewDefaultRegistry_Formats(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	tests := []struct {
		path    string
		content string
		format  domain.Format
	}{
		{"/repo/main.py", "def foo(): pass", domain.FormatCode},
		{"/docs/readme.md", "# Readme", domain.FormatText},
		{"/data/rows.csv", "a\n1", domain.FormatCSV},
		{"/data/items.json", "[1,2]", domain.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result, err := r.Normalise(ctx, &domain.RawDocument{Path: tt.path, Content: []byte(tt.content)})
			require.NoError(t, err)
			assert.Equal(t, tt.format, result.Document.Format)
		})
	}
}
