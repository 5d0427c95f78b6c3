// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Sitesmith. It lets AI assistants drive site generation and editing through
// tools, and browse generated documents as resources.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingGenerator = errors.New("mcp: site generator is required")
	ErrMissingEditor    = errors.New("mcp: site editor is required")
)
