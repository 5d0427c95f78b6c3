package mcp

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
)

// mockGenerator is a hand-written mock of driving.SiteGenerator.
type mockGenerator struct {
	generateFunc func(ctx context.Context, req driving.GenerateRequest) (*domain.GeneratedDocument, error)
	lastRequest  driving.GenerateRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req driving.GenerateRequest) (*domain.GeneratedDocument, error) {
	m.lastRequest = req
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &domain.GeneratedDocument{ID: "doc-1", HTML: "<html></html>"}, nil
}

// mockEditor is a hand-written mock of driving.SiteEditor.
type mockEditor struct {
	editFunc    func(ctx context.Context, req domain.EditRequest) (*domain.EditResult, error)
	lastRequest domain.EditRequest
}

func (m *mockEditor) Edit(ctx context.Context, req domain.EditRequest) (*domain.EditResult, error) {
	m.lastRequest = req
	if m.editFunc != nil {
		return m.editFunc(ctx, req)
	}
	return &domain.EditResult{HTML: req.CurrentHTML, Changed: false}, nil
}
