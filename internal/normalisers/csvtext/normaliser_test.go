package csvtext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

func normalise(t *testing.T, content string) (*domain.Document, error) {
	t.Helper()
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		Path:    "/data/people.csv",
		Content: []byte(content),
	})
	if err != nil {
		return nil, err
	}
	return &result.Document, nil
}

func TestNormalise_Records(t *testing.T) {
	doc, err := normalise(t, "name,age\nalice,30\nbob,41\n")
	require.NoError(t, err)

	assert.Equal(t, "name: alice\nage: 30\n\nname: bob\nage: 41", doc.Content)
	assert.Equal(t, domain.FormatCSV, doc.Format)
	assert.Equal(t, 2, doc.Metadata["records"])
	assert.Equal(t, 2, doc.Metadata["columns"])
}

func TestNormalise_QuotedFields(t *testing.T) {
	doc, err := normalise(t, "title,body\n\"Hello, world\",\"line one\"\n")
	require.NoError(t, err)

	assert.Equal(t, "title: Hello, world\nbody: line one", doc.Content)
}

func TestNormalise_ExtraColumns(t *testing.T) {
	doc, err := normalise(t, "a\n1,2\n")
	require.NoError(t, err)

	assert.Equal(t, "a: 1\ncolumn 2: 2", doc.Content)
}

func TestNormalise_HeaderOnly(t *testing.T) {
	doc, err := normalise(t, "a,b\n")
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
}

func TestNormalise_Empty(t *testing.T) {
	doc, err := normalise(t, "")
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
}

func TestNormalise_Malformed(t *testing.T) {
	_, err := normalise(t, "a,b\n\"unterminated,2\n")
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestNormalise_Nil(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".csv"}, New().SupportedExtensions())
}
