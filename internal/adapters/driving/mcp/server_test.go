package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchService)
	assert.NoError(t, (&Ports{Search: &mockSearchService{}}).Validate())
	assert.NoError(t, (&Ports{Search: &mockSearchService{}, Prompts: &mockPromptStore{}}).Validate())
}

// connect wires a client to the server over in-memory transports.
func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	return cs
}

func TestServer_EndToEnd(t *testing.T) {
	search := &mockSearchService{formatted: "You searched for \"loader\" and here are the results:\n\n"}
	server, err := NewServer(&Ports{Search: search, Prompts: &mockPromptStore{template: "{input}"}})
	require.NoError(t, err)
	cs := connect(t, server)
	ctx := context.Background()

	t.Run("lists the search tool", func(t *testing.T) {
		tools, err := cs.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, tools.Tools, 1)
		assert.Equal(t, "search", tools.Tools[0].Name)
	})

	t.Run("calls the search tool", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{
			Name:      "search",
			Arguments: map[string]any{"query": "loader"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)
		require.Len(t, res.Content, 1)
		text, ok := res.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, search.formatted, text.Text)
		assert.Equal(t, []string{"loader"}, search.queries)
	})

	t.Run("reads the sources resource", func(t *testing.T) {
		res, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: SourcesURI})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.JSONEq(t, "[]", res.Contents[0].Text)
	})

	t.Run("gets the write prompt", func(t *testing.T) {
		res, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{
			Name:      "write",
			Arguments: map[string]string{"request": "a README"},
		})
		require.NoError(t, err)
		require.Len(t, res.Messages, 1)
		text, ok := res.Messages[0].Content.(*mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "a README", text.Text)
	})
}
