package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

func sourcesRequest() *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: SourcesURI}}
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists sources", func(t *testing.T) {
		search := &mockSearchService{sources: []domain.SourceSummary{
			{Path: "docs/a.md", Chunks: 3},
			{Path: "src/main.go", Chunks: 1},
		}}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		res, err := server.handleSourcesResource(ctx, sourcesRequest())

		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Equal(t, SourcesURI, res.Contents[0].URI)
		assert.Equal(t, "application/json", res.Contents[0].MIMEType)
		assert.JSONEq(t, `[{"path":"docs/a.md","chunks":3},{"path":"src/main.go","chunks":1}]`, res.Contents[0].Text)
	})

	t.Run("empty before first build", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: domain.ErrNotInitialized}})
		require.NoError(t, err)

		res, err := server.handleSourcesResource(ctx, sourcesRequest())

		require.NoError(t, err)
		assert.JSONEq(t, "[]", res.Contents[0].Text)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleSourcesResource(ctx, sourcesRequest())

		assert.Error(t, err)
	})
}
