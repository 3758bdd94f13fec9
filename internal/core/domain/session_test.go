package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("keeps valid content type", func(t *testing.T) {
		s := NewSession(ContentTypeArticle, "src/\n  main.go")
		assert.Equal(t, ContentTypeArticle, s.ContentType())
		assert.Equal(t, "src/\n  main.go", s.Tree())
	})

	t.Run("falls back to documentation", func(t *testing.T) {
		s := NewSession("Poem", "")
		assert.Equal(t, ContentTypeDocumentation, s.ContentType())
	})

	t.Run("placeholder tree", func(t *testing.T) {
		s := NewSession(ContentTypeSummary, "")
		assert.Equal(t, "The project has no code base provided", s.Tree())
	})
}

func TestSession_History(t *testing.T) {
	s := NewSession(ContentTypeDocumentation, "")

	require.NoError(t, s.Record("user", "document the loader"))
	require.NoError(t, s.Record("assistant", "The loader reads files."))

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, Message{Role: "user", Content: "document the loader"}, history[0])

	// The returned slice is a copy.
	history[0].Content = "changed"
	assert.Equal(t, "document the loader", s.History()[0].Content)
}

func TestSession_Close(t *testing.T) {
	s := NewSession(ContentTypeDocumentation, "")
	require.NoError(t, s.Record("user", "hello"))

	s.Close()

	assert.Empty(t, s.History())
	assert.ErrorIs(t, s.Record("user", "again"), ErrSessionClosed)
}

func TestSession_Render(t *testing.T) {
	tmpl := "{tree}|{input}|{content_type}"

	t.Run("fills placeholders", func(t *testing.T) {
		s := NewSession(ContentTypeSummary, "")
		got := s.Render(tmpl, "describe the loader")
		assert.Equal(t, "The project has no code base provided|describe the loader|Summary", got)
	})

	t.Run("appends history", func(t *testing.T) {
		s := NewSession(ContentTypeArticle, "cmd/")
		require.NoError(t, s.Record("user", "hello"))
		require.NoError(t, s.Record("assistant", "hi"))

		got := s.Render(tmpl, "more")
		assert.Equal(t, "cmd/|more|Article\n\nChat history:\nuser: hello\nassistant: hi\n", got)
	})

	t.Run("closed session has no history", func(t *testing.T) {
		s := NewSession(ContentTypeArticle, "cmd/")
		require.NoError(t, s.Record("user", "hello"))
		s.Close()

		assert.Equal(t, "cmd/|x|Article", s.Render(tmpl, "x"))
	})
}
