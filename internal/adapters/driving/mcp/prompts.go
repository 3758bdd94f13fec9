package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
)

// registerPrompts registers the write prompt when a prompt store is available.
func (s *Server) registerPrompts() {
	if s.ports.Prompts == nil {
		return
	}

	s.server.AddPrompt(&mcp.Prompt{
		Name:        driven.PromptWrite,
		Description: "Frame a writing request with the project tree, the target content type and the chat so far",
		Arguments: []*mcp.PromptArgument{
			{Name: "request", Description: "What to write", Required: true},
			{Name: "content_type", Description: "Documentation, Article or Summary"},
		},
	}, s.handleWritePrompt)
}

// handleWritePrompt renders the write template and records the request in the session.
func (s *Server) handleWritePrompt(
	_ context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	request := strings.TrimSpace(args["request"])
	if request == "" {
		return nil, fmt.Errorf("%w: request argument is required", domain.ErrInvalidInput)
	}

	template, err := s.ports.Prompts.Load(driven.PromptWrite)
	if err != nil {
		return nil, fmt.Errorf("loading prompt: %w", err)
	}

	session := s.ports.Session
	if session == nil {
		session = domain.NewSession(domain.ContentType(args["content_type"]), "")
	}

	text := session.Render(template, request)
	if err := session.Record("user", request); err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Write a %s", session.ContentType()),
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}, nil
}
