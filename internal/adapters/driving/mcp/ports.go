package mcp

import (
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Generator runs the full generation pipeline.
	Generator driving.SiteGenerator

	// Editor applies natural-language edits to documents.
	Editor driving.SiteEditor

	// Documents persists generated documents. Optional: without it the
	// edit tool requires inline HTML and resources are empty.
	Documents driven.DocumentStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Generator == nil {
		return ErrMissingGenerator
	}
	if p.Editor == nil {
		return ErrMissingEditor
	}
	// Documents is optional
	return nil
}
