package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
)

// GenerateInput is the input schema for the generate_site tool.
type GenerateInput struct {
	URL          string `json:"url" jsonschema:"the source website URL to extract business facts from"`
	BusinessName string `json:"business_name,omitempty" jsonschema:"business name override when the source has none"`
	Category     string `json:"category,omitempty" jsonschema:"business category, e.g. bakery or law firm"`
}

// GenerateOutput is the output schema for the generate_site tool.
type GenerateOutput struct {
	DocumentID string   `json:"document_id"`
	HTML       string   `json:"html"`
	Thinking   string   `json:"thinking,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// EditInput is the input schema for the edit_site tool.
type EditInput struct {
	DocumentID  string `json:"document_id,omitempty" jsonschema:"ID of a stored document to edit"`
	HTML        string `json:"html,omitempty" jsonschema:"inline HTML to edit when no document ID is given"`
	Instruction string `json:"instruction" jsonschema:"the natural-language edit instruction"`
}

// EditOutput is the output schema for the edit_site tool.
type EditOutput struct {
	HTML      string `json:"html"`
	Message   string `json:"message"`
	Applied   int    `json:"applied"`
	Attempted int    `json:"attempted"`
	Changed   bool   `json:"changed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_site",
		Description: "Generate a complete single-page website from a business's existing web presence",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "edit_site",
		Description: "Apply a natural-language edit to a generated website",
	}, s.handleEdit)
}

// handleGenerate handles the generate_site tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	doc, err := s.ports.Generator.Generate(ctx, driving.GenerateRequest{
		SourceURL:    input.URL,
		BusinessName: input.BusinessName,
		Category:     input.Category,
	})
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	output := GenerateOutput{
		DocumentID: doc.ID,
		HTML:       doc.HTML,
		Thinking:   doc.Thinking,
	}
	if !doc.Validation.Valid {
		output.Warnings = append(output.Warnings,
			fmt.Sprintf("%d unresolved placeholder tokens were stripped", doc.Validation.Count))
	}

	return nil, output, nil
}

// handleEdit handles the edit_site tool invocation. Edits against a stored
// document persist the updated markup; inline edits return it only.
func (s *Server) handleEdit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditInput,
) (*mcp.CallToolResult, EditOutput, error) {
	html := input.HTML
	var stored *domain.GeneratedDocument

	if input.DocumentID != "" {
		if s.ports.Documents == nil {
			return nil, EditOutput{}, errors.New("no document store configured; pass inline html instead")
		}
		doc, err := s.ports.Documents.Get(ctx, input.DocumentID)
		if err != nil {
			return nil, EditOutput{}, fmt.Errorf("loading document %s: %w", input.DocumentID, err)
		}
		stored = doc
		html = doc.HTML
	}

	result, err := s.ports.Editor.Edit(ctx, domain.EditRequest{
		Instruction: input.Instruction,
		CurrentHTML: html,
	})
	if err != nil {
		// A failed edit with an explanation is still a useful response.
		if result != nil {
			return nil, toEditOutput(result), nil
		}
		return nil, EditOutput{}, err
	}

	if stored != nil && result.Changed {
		stored.HTML = result.HTML
		if err := s.ports.Documents.Save(ctx, stored); err != nil {
			return nil, EditOutput{}, fmt.Errorf("saving document %s: %w", stored.ID, err)
		}
	}

	return nil, toEditOutput(result), nil
}

func toEditOutput(result *domain.EditResult) EditOutput {
	return EditOutput{
		HTML:      result.HTML,
		Message:   result.UserMessage,
		Applied:   result.Applied,
		Attempted: result.Attempted,
		Changed:   result.Changed,
	}
}
