// Package mcp exposes docscribe retrieval to generators over the Model Context Protocol.
// A connected agent gets one search tool, a listing of the indexed sources and
// a prompt that frames a writing request with the session context.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
