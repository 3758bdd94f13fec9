package mcp

import (
	"github.com/custodia-labs/docscribe/internal/core/domain"
	"github.com/custodia-labs/docscribe/internal/core/ports/driven"
	"github.com/custodia-labs/docscribe/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
type Ports struct {
	// Search provides retrieval. Required.
	Search driving.SearchService

	// Prompts supplies the writing prompt template.
	// When nil the write prompt is not offered.
	Prompts driven.PromptStore

	// Session is the conversation the write prompt records into.
	// When nil each prompt request gets a fresh session.
	Session *domain.Session
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
