package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/logger"
	"github.com/stacklight-labs/sitesmith/internal/metrics"
)

// Ensure ManifestExtractor supports prompt customisation.
var _ driven.PromptStoreAware = (*ManifestExtractor)(nil)

// Default palette used when the identity carries no extracted colors.
const (
	defaultPrimaryColor   = "#1a365d"
	defaultSecondaryColor = "#2b6cb0"
	defaultAccentColor    = "#ed8936"

	fallbackTone = "professional, trustworthy, modern"
)

// defaultManifestPrompt is the fallback prompt when no PromptStore is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultManifestPrompt = `You are a brand strategist. Analyse the following facts about a %s business and produce its brand manifest.

Respond with ONLY a JSON object, no markdown fencing and no commentary, matching exactly this shape:
{"businessName":"","tagline":"","primaryColor":"#rrggbb","secondaryColor":"#rrggbb","accentColor":"#rrggbb","fontHeadline":"","fontBody":"","tone":"","services":[{"name":"","description":""}],"heroHeadline":"","heroSubheadline":"","ctaText":"","phone":"","email":"","address":""}

Business facts:
%s`

// ManifestExtractor compresses a SiteIdentity into a BrandManifest with one
// model call. Extraction never propagates a hard failure: on any call or
// parse error it degrades to a deterministic manifest synthesised from the
// identity directly.
type ManifestExtractor struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	recorder    metrics.Recorder
}

// NewManifestExtractor creates a new manifest extractor.
func NewManifestExtractor(llm driven.LLMService, recorder metrics.Recorder) *ManifestExtractor {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &ManifestExtractor{llm: llm, recorder: recorder}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (e *ManifestExtractor) SetPromptStore(store driven.PromptStore) {
	e.promptStore = store
}

// Extract derives the brand manifest for an identity. The returned manifest
// is always usable; the second return value is a short rationale line for
// the caller's thinking trace.
func (e *ManifestExtractor) Extract(ctx context.Context, identity *domain.SiteIdentity, category string) (*domain.BrandManifest, string) {
	start := time.Now()
	defer func() { e.recorder.ObserveStageDuration("manifest", time.Since(start)) }()

	if e.llm == nil {
		logger.Warn("manifest: no model configured, using fallback manifest")
		return e.fallback(identity), "Used extracted facts directly (no model configured)."
	}

	prompt := fmt.Sprintf(e.loadPrompt(driven.PromptBrandManifest, defaultManifestPrompt),
		category, identityFacts(identity))

	raw, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1500,
		Temperature: 0.4,
	})
	if err != nil {
		e.recorder.IncModelCall("manifest", metrics.ResultError)
		logger.Warn("manifest: model call failed (%v), using fallback manifest", err)
		return e.fallback(identity), "Brand analysis unavailable, derived the brand from extracted facts."
	}

	manifest, err := parseManifest(raw)
	if err != nil {
		e.recorder.IncModelCall("manifest", metrics.ResultFallback)
		logger.Warn("manifest: unparsable response (%v), using fallback manifest", err)
		return e.fallback(identity), "Brand analysis was unreadable, derived the brand from extracted facts."
	}

	e.recorder.IncModelCall("manifest", metrics.ResultSuccess)
	fillManifestGaps(manifest, e.fallback(identity))
	return manifest, fmt.Sprintf("Analysed the brand as %q.", manifest.Tone)
}

// parseManifest extracts and decodes the manifest JSON from a raw response.
func parseManifest(raw string) (*domain.BrandManifest, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var manifest domain.BrandManifest
	if err := json.Unmarshal([]byte(obj), &manifest); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if manifest.BusinessName == "" && manifest.HeroHeadline == "" {
		return nil, domain.ErrEmptyPayload
	}
	return &manifest, nil
}

// fallback synthesises a manifest deterministically from the identity:
// colors are taken positionally from the extracted color list, tone is fixed
// and services are copied verbatim.
func (e *ManifestExtractor) fallback(identity *domain.SiteIdentity) *domain.BrandManifest {
	m := &domain.BrandManifest{
		PrimaryColor:   defaultPrimaryColor,
		SecondaryColor: defaultSecondaryColor,
		AccentColor:    defaultAccentColor,
		FontHeadline:   "Montserrat",
		FontBody:       "Open Sans",
		Tone:           fallbackTone,
		CTAText:        "Get in Touch",
	}
	if identity == nil {
		return m
	}

	m.BusinessName = identity.BusinessName
	m.Tagline = identity.Tagline
	m.HeroHeadline = identity.BusinessName
	m.HeroSubheadline = identity.Tagline
	m.Phone = identity.Contact.Phone
	m.Email = identity.Contact.Email
	m.Address = identity.Contact.Address

	if len(identity.Colors) > 0 {
		m.PrimaryColor = identity.Colors[0]
	}
	if len(identity.Colors) > 1 {
		m.SecondaryColor = identity.Colors[1]
	}
	if len(identity.Colors) > 2 {
		m.AccentColor = identity.Colors[2]
	}

	for _, svc := range identity.Services {
		m.Services = append(m.Services, domain.ServiceEntry{Name: svc})
	}

	return m
}

// fillManifestGaps copies fallback values into fields the model left blank,
// so a sparsely answered call still yields a complete manifest.
func fillManifestGaps(m, fb *domain.BrandManifest) {
	if m.BusinessName == "" {
		m.BusinessName = fb.BusinessName
	}
	if m.PrimaryColor == "" {
		m.PrimaryColor = fb.PrimaryColor
	}
	if m.SecondaryColor == "" {
		m.SecondaryColor = fb.SecondaryColor
	}
	if m.AccentColor == "" {
		m.AccentColor = fb.AccentColor
	}
	if m.FontHeadline == "" {
		m.FontHeadline = fb.FontHeadline
	}
	if m.FontBody == "" {
		m.FontBody = fb.FontBody
	}
	if m.Tone == "" {
		m.Tone = fb.Tone
	}
	if m.HeroHeadline == "" {
		m.HeroHeadline = fb.HeroHeadline
	}
	if m.CTAText == "" {
		m.CTAText = fb.CTAText
	}
	if len(m.Services) == 0 {
		m.Services = fb.Services
	}
}

// identityFacts serialises the identity into the compact fact block embedded
// in the manifest prompt.
func identityFacts(identity *domain.SiteIdentity) string {
	if identity == nil {
		return "(no facts extracted)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", identity.BusinessName)
	if identity.Tagline != "" {
		fmt.Fprintf(&b, "Tagline: %s\n", identity.Tagline)
	}
	if len(identity.Colors) > 0 {
		fmt.Fprintf(&b, "Brand colors (by prominence): %s\n", strings.Join(identity.Colors, ", "))
	}
	if len(identity.Services) > 0 {
		fmt.Fprintf(&b, "Services: %s\n", strings.Join(identity.Services, "; "))
	}
	for _, t := range identity.Testimonials {
		fmt.Fprintf(&b, "Testimonial: %q - %s\n", t.Quote, t.Author)
	}
	if identity.Contact.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", identity.Contact.Phone)
	}
	if identity.Contact.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", identity.Contact.Email)
	}
	if identity.Contact.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", identity.Contact.Address)
	}
	if identity.PageCopy != "" {
		fmt.Fprintf(&b, "Page copy:\n%s\n", truncate(identity.PageCopy, 4000))
	}
	return b.String()
}

// truncate caps s at n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && !strings.HasSuffix(cut, " ") {
		cut = cut[:len(cut)-1]
	}
	return cut + "..."
}

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func (e *ManifestExtractor) loadPrompt(name, fallback string) string {
	if e.promptStore == nil {
		return fallback
	}
	prompt, err := e.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
