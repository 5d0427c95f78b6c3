package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/storage/memory"
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
	return &domain.GeneratedDocument{ID: "doc-1", HTML: "<html></html>", Validation: domain.ValidationResult{Valid: true}}, nil
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

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Generator == nil {
		ports.Generator = &mockGenerator{}
	}
	if ports.Editor == nil {
		ports.Editor = &mockEditor{}
	}
	srv, err := NewServer(ports)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresPorts(t *testing.T) {
	_, err := NewServer(&Ports{Editor: &mockEditor{}})
	assert.ErrorIs(t, err, ErrMissingGenerator)

	_, err = NewServer(&Ports{Generator: &mockGenerator{}})
	assert.ErrorIs(t, err, ErrMissingEditor)
}

func TestHandleGenerate(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(_ context.Context, _ driving.GenerateRequest) (*domain.GeneratedDocument, error) {
			return &domain.GeneratedDocument{
				ID:         "doc-42",
				HTML:       "<html><body>Bella's Bakery</body></html>",
				Thinking:   "warm palette",
				Validation: domain.ValidationResult{Valid: true},
			}, nil
		},
	}
	srv := newTestServer(t, &Ports{Generator: gen})

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", generateRequest{
		URL:          "https://bellasbakery.example",
		BusinessName: "Bella's Bakery",
		Category:     "bakery",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "doc-42", resp.DocumentID)
	assert.Contains(t, resp.HTML, "Bella's Bakery")
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, "https://bellasbakery.example", gen.lastRequest.SourceURL)
	assert.Equal(t, "bakery", gen.lastRequest.Category)
}

func TestHandleGenerate_MissingURL(t *testing.T) {
	srv := newTestServer(t, &Ports{})

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", generateRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_StrippedTokensWarning(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(_ context.Context, _ driving.GenerateRequest) (*domain.GeneratedDocument, error) {
			return &domain.GeneratedDocument{
				ID:         "doc-1",
				HTML:       "<html></html>",
				Validation: domain.ValidationResult{Valid: false, Unresolved: []string{"[[ID_LOGO_HERE]]"}, Count: 1},
			}, nil
		},
	}
	srv := newTestServer(t, &Ports{Generator: gen})

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", generateRequest{URL: "https://a.example"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "unresolved placeholder")
}

func TestHandleGenerate_ErrorStatus(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(_ context.Context, _ driving.GenerateRequest) (*domain.GeneratedDocument, error) {
			return nil, domain.ErrIdentityUnavailable
		},
	}
	srv := newTestServer(t, &Ports{Generator: gen})

	rec := doJSON(t, srv, http.MethodPost, "/api/generate", generateRequest{URL: "https://a.example"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleEdit_Inline(t *testing.T) {
	editor := &mockEditor{
		editFunc: func(_ context.Context, req domain.EditRequest) (*domain.EditResult, error) {
			return &domain.EditResult{
				HTML:        strings.Replace(req.CurrentHTML, "Old", "New", 1),
				UserMessage: "Updated the heading.",
				Applied:     1,
				Attempted:   1,
				Changed:     true,
			}, nil
		},
	}
	srv := newTestServer(t, &Ports{Editor: editor})

	rec := doJSON(t, srv, http.MethodPost, "/api/edit", editRequest{
		HTML:        "<h1>Old</h1>",
		Instruction: "change the heading",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp editResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "<h1>New</h1>", resp.HTML)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Applied)
}

func TestHandleEdit_StoredDocumentPersisted(t *testing.T) {
	docs := memory.NewDocumentStore()
	require.NoError(t, docs.Save(context.Background(), &domain.GeneratedDocument{
		ID:   "doc-7",
		HTML: "<h1>Old</h1>",
	}))

	editor := &mockEditor{
		editFunc: func(_ context.Context, req domain.EditRequest) (*domain.EditResult, error) {
			return &domain.EditResult{
				HTML:      strings.Replace(req.CurrentHTML, "Old", "New", 1),
				Applied:   1,
				Attempted: 1,
				Changed:   true,
			}, nil
		},
	}
	srv := newTestServer(t, &Ports{Editor: editor, Documents: docs})

	rec := doJSON(t, srv, http.MethodPost, "/api/edit", editRequest{
		DocumentID:  "doc-7",
		Instruction: "change the heading",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := docs.Get(context.Background(), "doc-7")
	require.NoError(t, err)
	assert.Equal(t, "<h1>New</h1>", stored.HTML)
}

func TestHandleEdit_FailedWithExplanation(t *testing.T) {
	editor := &mockEditor{
		editFunc: func(_ context.Context, req domain.EditRequest) (*domain.EditResult, error) {
			return &domain.EditResult{
				HTML:        req.CurrentHTML,
				UserMessage: "I couldn't locate the text to change.",
				Attempted:   2,
				Changed:     false,
			}, domain.ErrNoOperationsApplied
		},
	}
	srv := newTestServer(t, &Ports{Editor: editor})

	rec := doJSON(t, srv, http.MethodPost, "/api/edit", editRequest{
		HTML:        "<h1>Heading</h1>",
		Instruction: "change something missing",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp editResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Changed)
	assert.Contains(t, resp.Message, "couldn't locate")
}

func TestHandleEdit_DocumentNotFound(t *testing.T) {
	srv := newTestServer(t, &Ports{Documents: memory.NewDocumentStore()})

	rec := doJSON(t, srv, http.MethodPost, "/api/edit", editRequest{
		DocumentID:  "missing",
		Instruction: "anything",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDocuments_ListGetDelete(t *testing.T) {
	docs := memory.NewDocumentStore()
	require.NoError(t, docs.Save(context.Background(), &domain.GeneratedDocument{
		ID:           "doc-1",
		BusinessName: "Bella's Bakery",
		HTML:         "<html><body>Bakery</body></html>",
	}))
	srv := newTestServer(t, &Ports{Documents: docs})

	rec := doJSON(t, srv, http.MethodGet, "/api/documents", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bella's Bakery")

	rec = doJSON(t, srv, http.MethodGet, "/api/documents/doc-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Bakery")

	rec = doJSON(t, srv, http.MethodDelete, "/api/documents/doc-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/documents/doc-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDocuments_NoStore(t *testing.T) {
	srv := newTestServer(t, &Ports{})

	rec := doJSON(t, srv, http.MethodGet, "/api/documents", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetAsset(t *testing.T) {
	assets := memory.NewAssetStore()
	url, err := assets.Put(context.Background(), []byte("pngbytes"), "image/png")
	require.NoError(t, err)
	id := strings.TrimPrefix(url, "asset://")

	srv := newTestServer(t, &Ports{Assets: assets})

	rec := doJSON(t, srv, http.MethodGet, "/assets/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "pngbytes", rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/assets/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &Ports{})

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
