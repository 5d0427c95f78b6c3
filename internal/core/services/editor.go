package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
	"github.com/stacklight-labs/sitesmith/internal/editops"
	"github.com/stacklight-labs/sitesmith/internal/logger"
	"github.com/stacklight-labs/sitesmith/internal/metrics"
)

// Ensure EditService implements the driving port and supports prompt
// customisation.
var (
	_ driving.SiteEditor      = (*EditService)(nil)
	_ driven.PromptStoreAware = (*EditService)(nil)
)

// truncationRatio rejects a legacy full-document response shorter than
// half the current document: almost certainly a cut-off rewrite, never an
// intentional edit.
const truncationRatio = 0.5

// defaultEditSystemPrompt is the fallback system prompt when no PromptStore
// is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultEditSystemPrompt = `You are an HTML editor. The user gives you a complete HTML document and an instruction. Make the SMALLEST edit that satisfies the instruction.

Respond in EXACTLY this format:

@@RATIONALE@@
One or two sentences of reasoning.
@@MESSAGE@@
One plain-language sentence telling the user what you changed.
@@EDIT@@
<exact text copied from the document>
@@WITH@@
<the replacement text>
@@END@@

Rules:
- The @@EDIT@@ block must be copied character-for-character from the document, including attribute order and quoting.
- Keep each @@EDIT@@ block as short as possible while staying unique within the document.
- Emit multiple @@EDIT@@ ... @@END@@ blocks for multi-part changes; they are applied in order.
- An empty @@WITH@@ block deletes the searched text.
- NEVER output the whole document.`

// EditService applies natural-language instructions to an existing document
// as localized search/replace operations proposed by the model. A logo
// swap with an attached image bypasses the model entirely.
type EditService struct {
	llm         driven.LLMService
	assets      driven.AssetStore
	promptStore driven.PromptStore
	recorder    metrics.Recorder
}

// NewEditService creates a new edit service. assets is optional; without it
// the logo fast path only handles attachments that already carry a URL.
func NewEditService(llm driven.LLMService, assets driven.AssetStore, recorder metrics.Recorder) *EditService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &EditService{llm: llm, assets: assets, recorder: recorder}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *EditService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Edit applies one edit request. A failed edit returns an EditResult with
// Changed=false and a user-facing explanation alongside the error; the
// caller decides whether to surface the result, the error or both.
func (s *EditService) Edit(ctx context.Context, req domain.EditRequest) (*domain.EditResult, error) {
	if strings.TrimSpace(req.CurrentHTML) == "" {
		return nil, fmt.Errorf("%w: no document to edit", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return nil, fmt.Errorf("%w: empty instruction", domain.ErrInvalidInput)
	}

	if result, ok := s.tryLogoFastPath(ctx, req); ok {
		return result, nil
	}

	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	start := time.Now()
	defer func() { s.recorder.ObserveStageDuration("edit", time.Since(start)) }()

	response, err := s.llm.Chat(ctx, s.buildMessages(req), driven.ChatOptions{
		MaxTokens:   4000,
		Temperature: 0.2,
	})
	if err != nil {
		s.recorder.IncEditOutcome("rejected")
		return nil, fmt.Errorf("edit model call: %w", err)
	}

	parsed := editops.Parse(response)
	if len(parsed.Operations) == 0 {
		return s.applyFullDocument(req, response, parsed)
	}
	return s.applyOperations(req, parsed)
}

// tryLogoFastPath handles "replace the logo" edits with an attached image
// without a model round-trip. Returns ok=false when the request does not
// qualify or no logo element was found.
func (s *EditService) tryLogoFastPath(ctx context.Context, req domain.EditRequest) (*domain.EditResult, bool) {
	if len(req.Attachments) == 0 || !strings.Contains(strings.ToLower(req.Instruction), "logo") {
		return nil, false
	}

	url, err := s.attachmentURL(ctx, req.Attachments[0])
	if err != nil {
		logger.Warn("edit: store logo attachment: %v", err)
		return nil, false
	}

	updated, ok := editops.ReplaceLogo(req.CurrentHTML, url)
	if !ok {
		return nil, false
	}

	s.recorder.IncEditOutcome("fastpath")
	return &domain.EditResult{
		HTML:        updated,
		UserMessage: "Replaced the logo with your uploaded image.",
		Applied:     1,
		Attempted:   1,
		Changed:     updated != req.CurrentHTML,
	}, true
}

func (s *EditService) attachmentURL(ctx context.Context, att domain.Attachment) (string, error) {
	if att.URL != "" {
		return att.URL, nil
	}
	if s.assets == nil {
		return "", fmt.Errorf("no asset store configured")
	}
	return s.assets.Put(ctx, att.Data, att.MediaType)
}

// applyOperations folds the parsed operations over the document in order.
// Zero applied operations is an explicit failure: the document is returned
// unchanged, never a silent no-op dressed up as success.
func (s *EditService) applyOperations(req domain.EditRequest, parsed editops.ParsedResponse) (*domain.EditResult, error) {
	applied := editops.Apply(req.CurrentHTML, parsed.Operations)

	result := &domain.EditResult{
		Thinking:       parsed.Rationale,
		UserMessage:    parsed.Message,
		Applied:        applied.Applied,
		Attempted:      len(parsed.Operations),
		FailedSearches: applied.Failed,
	}

	if applied.Applied == 0 {
		result.HTML = req.CurrentHTML
		result.UserMessage = "I couldn't locate the text to change, so the page was left untouched. Try describing the element differently."
		s.recorder.IncEditOutcome("rejected")
		return result, domain.ErrNoOperationsApplied
	}

	result.HTML = applied.HTML
	result.Changed = applied.HTML != req.CurrentHTML
	if result.UserMessage == "" {
		result.UserMessage = fmt.Sprintf("Applied %d of %d changes.", applied.Applied, len(parsed.Operations))
	}

	if len(applied.Failed) > 0 {
		logger.Warn("edit: %d of %d operations found no match", len(applied.Failed), len(parsed.Operations))
		s.recorder.IncEditOutcome("partial")
	} else {
		s.recorder.IncEditOutcome("applied")
	}
	return result, nil
}

// applyFullDocument handles a response without structured edit blocks by
// treating it as a full replacement document. The length-ratio guard
// rejects responses that lost more than half the document; models that run
// out of tokens mid-rewrite produce exactly that shape.
func (s *EditService) applyFullDocument(req domain.EditRequest, response string, parsed editops.ParsedResponse) (*domain.EditResult, error) {
	doc, ok := editops.ExtractFullDocument(response)
	if !ok {
		s.recorder.IncEditOutcome("rejected")
		return nil, fmt.Errorf("parse edit response: %w", domain.ErrNoStructuredPayload)
	}

	if float64(len(doc)) < float64(len(req.CurrentHTML))*truncationRatio {
		s.recorder.IncEditOutcome("rejected")
		return nil, fmt.Errorf("full-document response is %d bytes against %d: %w",
			len(doc), len(req.CurrentHTML), domain.ErrTruncated)
	}

	s.recorder.IncEditOutcome("applied")
	message := parsed.Message
	if message == "" {
		message = "Updated the page."
	}
	return &domain.EditResult{
		HTML:        doc,
		Thinking:    parsed.Rationale,
		UserMessage: message,
		Applied:     1,
		Attempted:   1,
		Changed:     doc != req.CurrentHTML,
	}, nil
}

func (s *EditService) buildMessages(req domain.EditRequest) []driven.ChatMessage {
	system := defaultEditSystemPrompt
	if s.promptStore != nil {
		if p, err := s.promptStore.Load(driven.PromptEditSystem); err == nil && p != "" {
			system = p
		}
	}

	user := fmt.Sprintf("Instruction: %s\n\nCurrent document:\n%s", req.Instruction, req.CurrentHTML)

	return []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user, Images: req.Attachments},
	}
}
