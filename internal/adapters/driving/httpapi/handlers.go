package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
	"github.com/stacklight-labs/sitesmith/internal/logger"
)

// generateRequest is the /api/generate request body.
type generateRequest struct {
	URL          string `json:"url"`
	BusinessName string `json:"businessName,omitempty"`
	Category     string `json:"category,omitempty"`
}

// generateResponse is the /api/generate response body.
type generateResponse struct {
	DocumentID string   `json:"documentId"`
	HTML       string   `json:"html"`
	Thinking   string   `json:"thinking,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// editRequest is the /api/edit request body. Attachments carry base64 data.
type editRequest struct {
	DocumentID  string `json:"documentId,omitempty"`
	HTML        string `json:"html,omitempty"`
	Instruction string `json:"instruction"`
	Attachments []struct {
		MediaType string `json:"mediaType"`
		Data      string `json:"data"`
	} `json:"attachments,omitempty"`
}

// editResponse is the /api/edit response body.
type editResponse struct {
	HTML      string `json:"html"`
	Message   string `json:"message"`
	Applied   int    `json:"applied"`
	Attempted int    `json:"attempted"`
	Changed   bool   `json:"changed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	doc, err := s.ports.Generator.Generate(r.Context(), driving.GenerateRequest{
		SourceURL:    req.URL,
		BusinessName: req.BusinessName,
		Category:     req.Category,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	resp := generateResponse{
		DocumentID: doc.ID,
		HTML:       doc.HTML,
		Thinking:   doc.Thinking,
	}
	if !doc.Validation.Valid {
		resp.Warnings = append(resp.Warnings, "unresolved placeholder tokens were stripped")
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	html := req.HTML
	var stored *domain.GeneratedDocument
	if req.DocumentID != "" {
		if s.ports.Documents == nil {
			writeError(w, http.StatusBadRequest, "no document store configured; pass inline html")
			return
		}
		doc, err := s.ports.Documents.Get(r.Context(), req.DocumentID)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		stored = doc
		html = doc.HTML
	}

	attachments, err := decodeAttachments(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.ports.Editor.Edit(r.Context(), domain.EditRequest{
		Instruction: req.Instruction,
		CurrentHTML: html,
		Attachments: attachments,
	})
	if err != nil && result == nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	if stored != nil && result.Changed {
		stored.HTML = result.HTML
		if err := s.ports.Documents.Save(r.Context(), stored); err != nil {
			writeError(w, http.StatusInternalServerError, "saving document: "+err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, editResponse{
		HTML:      result.HTML,
		Message:   result.UserMessage,
		Applied:   result.Applied,
		Attempted: result.Attempted,
		Changed:   result.Changed,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.ports.Documents == nil {
		writeError(w, http.StatusNotFound, "no document store configured")
		return
	}

	docs, err := s.ports.Documents.List(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type docInfo struct {
		ID           string `json:"id"`
		BusinessName string `json:"businessName"`
		Category     string `json:"category"`
		CreatedAt    string `json:"createdAt"`
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
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.ports.Documents == nil {
		writeError(w, http.StatusNotFound, "no document store configured")
		return
	}

	doc, err := s.ports.Documents.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc.HTML)); err != nil {
		logger.Debug("httpapi: write document response: %v", err)
	}
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.ports.Documents == nil {
		writeError(w, http.StatusNotFound, "no document store configured")
		return
	}

	if err := s.ports.Documents.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	if s.ports.Assets == nil {
		writeError(w, http.StatusNotFound, "no asset store configured")
		return
	}

	data, mediaType, err := s.ports.Assets.Get(r.Context(), "asset://"+r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", mediaType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Debug("httpapi: write asset response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeAttachments(req editRequest) ([]domain.Attachment, error) {
	if len(req.Attachments) == 0 {
		return nil, nil
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		data, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			return nil, errors.New("attachment data must be base64 encoded")
		}
		attachments = append(attachments, domain.Attachment{
			MediaType: a.MediaType,
			Data:      data,
		})
	}
	return attachments, nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrLLMUnavailable), errors.Is(err, domain.ErrIdentityUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("httpapi: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
