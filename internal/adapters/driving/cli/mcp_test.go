package cli

import (
	"context"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestMCPServeCmd_Flags(t *testing.T) {
	mcpCmd := newMCPCmd(&globalOptions{})
	serveCmd, _, err := mcpCmd.Find([]string{"serve"})
	require.NoError(t, err)

	port := serveCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)

	assert.NotNil(t, serveCmd.Flags().Lookup("watch"))
	assert.NotNil(t, serveCmd.Flags().Lookup("source"))
	assert.NotNil(t, serveCmd.Flags().Lookup("tree-file"))
	assert.Equal(t, "Documentation", serveCmd.Flags().Lookup("content-type").DefValue)
}

func TestMCPServeCmd_RequiresSource(t *testing.T) {
	_, err := execute(t, "mcp", "serve")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "source" not set`)
}

func TestMCPServeCmd_UnknownContentType(t *testing.T) {
	_, err := execute(t, "mcp", "serve", "--source", t.TempDir(), "--content-type", "Poem")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMCPServeCmd_EmptyCorpus(t *testing.T) {
	_, err := execute(t, "mcp", "serve", "--source", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestMCPServeCmd_HTTPStopsOnCancel(t *testing.T) {
	clearSettingsEnv(t)
	source := writeFile(t, filepath.Join(t.TempDir(), "notes.md"), "docscribe serves search over MCP")
	port := freePort(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := executeIn(ctx, t, t.TempDir(),
		"mcp", "serve", "--source", source, "--port", strconv.Itoa(port), "--watch")

	require.NoError(t, err)
	assert.Contains(t, out, "MCP server listening on http://localhost:"+strconv.Itoa(port))
}

func TestParseContentType(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.ContentType
		wantErr bool
	}{
		{"Documentation", domain.ContentTypeDocumentation, false},
		{"article", domain.ContentTypeArticle, false},
		{"SUMMARY", domain.ContentTypeSummary, false},
		{"", "", true},
		{"Poem", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseContentType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodebaseTree(t *testing.T) {
	treeFile := writeFile(t, filepath.Join(t.TempDir(), "tree.txt"), "project/\n  main.go\n")

	tree, err := codebaseTree(treeFile)
	require.NoError(t, err)
	assert.Equal(t, "This is my project code base:\nproject/\n  main.go", tree)

	tree, err = codebaseTree("")
	require.NoError(t, err)
	assert.Equal(t, "The project has no code base provided.", tree)

	_, err = codebaseTree(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMCPServeCmd_MissingTreeFile(t *testing.T) {
	source := writeFile(t, filepath.Join(t.TempDir(), "notes.md"), "notes")

	_, err := execute(t, "mcp", "serve", "--source", source, "--tree-file", filepath.Join(t.TempDir(), "none.txt"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMCPServeCmd_UnreachableBackend(t *testing.T) {
	unreachableOllama(t)
	source := writeFile(t, filepath.Join(t.TempDir(), "notes.md"), "notes")

	_, err := executeIn(context.Background(), t, t.TempDir(), "mcp", "serve", "--source", source)

	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
}
