package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docscribe/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docscribe/internal/connectors/filesystem"
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/services"
	"github.com/custodia-labs/docscribe/internal/logger"
)

type mcpServeOptions struct {
	sources     []string
	port        int
	watch       bool
	contentType string
	treeFile    string
}

func newMCPCmd(opts *globalOptions) *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
	}

	so := &mcpServeOptions{}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Index the given sources and start the Model Context Protocol server.

The server offers a "search" tool, a "docscribe://sources" resource listing
the indexed files and a "write" prompt that frames a writing request with the
code base tree from --tree-file.

By default the server communicates over stdio. Use --port to serve
streamable HTTP instead. With --watch the index is rebuilt whenever a
source file changes.

Examples:
  # Stdio mode
  docscribe mcp serve --source ./docs --source ./internal

  # HTTP mode, rebuilding on change
  docscribe mcp serve -s ./docs --port 8080 --watch

Client configuration:
  {
    "mcpServers": {
      "docscribe": {
        "command": "/path/to/docscribe",
        "args": ["mcp", "serve", "--source", "/path/to/project"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCPServe(cmd, opts, so)
		},
	}

	serveCmd.Flags().StringArrayVarP(&so.sources, "source", "s", nil, "file or directory to index (repeatable)")
	serveCmd.Flags().IntVarP(&so.port, "port", "p", 0, "HTTP port (0 = use stdio)")
	serveCmd.Flags().BoolVarP(&so.watch, "watch", "w", false, "rebuild the index when sources change")
	serveCmd.Flags().StringVar(&so.contentType, "content-type", string(domain.ContentTypeDocumentation),
		"content being written: Documentation, Article or Summary")
	serveCmd.Flags().StringVar(&so.treeFile, "tree-file", "", "file holding the code base tree shown to the assistant")
	_ = serveCmd.MarkFlagRequired("source")

	mcpCmd.AddCommand(serveCmd)
	return mcpCmd
}

func runMCPServe(cmd *cobra.Command, opts *globalOptions, so *mcpServeOptions) error {
	contentType, err := parseContentType(so.contentType)
	if err != nil {
		return err
	}
	tree, err := codebaseTree(so.treeFile)
	if err != nil {
		return err
	}

	settings, err := opts.loadSettings()
	if err != nil {
		return err
	}

	svc, release, err := newSearchService(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer release()

	ctx := cmd.Context()
	if err := rebuild(ctx, cmd, svc, so.sources); err != nil {
		return err
	}

	prompts, err := opts.promptStore()
	if err != nil {
		return err
	}

	session := domain.NewSession(contentType, tree)
	defer session.Close()

	server, err := mcp.NewServer(&mcp.Ports{
		Search:  svc,
		Prompts: prompts,
		Session: session,
	})
	if err != nil {
		return err
	}

	if so.watch {
		watcher := filesystem.NewWatcher(so.sources, func(ctx context.Context) {
			if err := rebuild(ctx, cmd, svc, so.sources); err != nil {
				logger.Warn("Rebuild failed, keeping previous index: %v", err)
			}
		})
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("Watcher stopped: %v", err)
			}
		}()
	}

	if so.port > 0 {
		addr := fmt.Sprintf(":%d", so.port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// rebuild re-expands the sources and rebuilds the index wholesale.
// Skipped files go to stderr, which stays clear of the stdio transport.
func rebuild(ctx context.Context, cmd *cobra.Command, svc *services.SearchService, sources []string) error {
	files, err := filesystem.ExpandPaths(sources)
	if err != nil {
		return err
	}

	report, err := svc.Build(ctx, files)
	printSkipped(cmd, report)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	return nil
}

// parseContentType matches a content type name case-insensitively.
func parseContentType(name string) (domain.ContentType, error) {
	for _, ct := range []domain.ContentType{
		domain.ContentTypeDocumentation,
		domain.ContentTypeArticle,
		domain.ContentTypeSummary,
	} {
		if strings.EqualFold(name, string(ct)) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidInput, name)
}

// codebaseTree reads the code base description for the write prompt.
func codebaseTree(path string) (string, error) {
	if path == "" {
		return "The project has no code base provided.", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading tree file: %v", domain.ErrInvalidInput, err)
	}
	return "This is my project code base:\n" + strings.TrimSpace(string(data)), nil
}
