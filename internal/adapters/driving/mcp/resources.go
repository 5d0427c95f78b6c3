package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Sitesmith resources.
const uriScheme = "sitesmith://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing generated documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of generated website documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's markup.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-html",
		Description: "The full HTML of a generated website",
		MIMEType:    "text/html",
	}, s.handleDocumentHTMLResource)
}

// handleDocumentsResource returns a list of generated documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Documents.List(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID           string `json:"id"`
		BusinessName string `json:"business_name"`
		Category     string `json:"category"`
		CreatedAt    string `json:"created_at"`
	}

	infos := make([]docInfo, len(docs))
	for i, doc := range docs {
		infos[i] = docInfo{
			ID:           doc.ID,
			BusinessName: doc.BusinessName,
			Category:     doc.Category,
			CreatedAt:    doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("marshalling document list: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentHTMLResource returns a stored document's markup.
func (s *Server) handleDocumentHTMLResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, fmt.Errorf("no document store configured")
	}

	id := strings.TrimPrefix(req.Params.URI, uriScheme+"documents/")
	doc, err := s.ports.Documents.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", id, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/html",
			Text:     doc.HTML,
		}},
	}, nil
}
