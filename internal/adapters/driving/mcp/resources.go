package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docscribe/internal/core/domain"
)

// SourcesURI identifies the indexed-sources resource.
const SourcesURI = "docscribe://sources"

// sourceInfo is one entry of the sources resource.
type sourceInfo struct {
	Path   string `json:"path"`
	Chunks int    `json:"chunks"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         SourcesURI,
		Name:        "sources",
		Description: "Files in the current index with their chunk counts",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)
}

// handleSourcesResource lists the indexed files. Before the first build the list is empty.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sources, err := s.ports.Search.Sources(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotInitialized) {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		infos[i] = sourceInfo{Path: src.Path, Chunks: src.Chunks}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
