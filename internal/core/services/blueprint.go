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

// Ensure BlueprintPlanner supports prompt customisation.
var _ driven.PromptStoreAware = (*BlueprintPlanner)(nil)

// defaultBlueprintPrompt is the fallback prompt when no PromptStore is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultBlueprintPrompt = `You are a web designer planning a single-page site for a %s business.

Brand manifest:
%s

Content availability:
%s

Design style must be one of: modern, classic, bold, minimal, elegant, playful.
Section types: hero, services, contact are REQUIRED (services only if the business has services). Optional, only when content supports them: about, testimonials, gallery, faq, team, cta.

Respond with ONLY a JSON object, no markdown fencing and no commentary, matching exactly this shape:
{"designStyle":"modern","sections":[{"id":"hero","type":"hero","priority":1,"contentHints":"","imageNeeded":true}],"navLinks":[{"label":"","href":"#hero"}],"colorScheme":{"primary":"#rrggbb","secondary":"#rrggbb","accent":"#rrggbb","background":"#rrggbb","text":"#rrggbb"}}

Every navLink href referencing an anchor must match a section id. Section ids must be unique.`

// BlueprintPlanner turns a BrandManifest into a SiteBlueprint with one model
// call. Planning never propagates a hard failure: on any call or parse error
// it degrades to a fixed three-section blueprint with a color scheme copied
// from the manifest.
type BlueprintPlanner struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	recorder    metrics.Recorder
}

// NewBlueprintPlanner creates a new blueprint planner.
func NewBlueprintPlanner(llm driven.LLMService, recorder metrics.Recorder) *BlueprintPlanner {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &BlueprintPlanner{llm: llm, recorder: recorder}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (p *BlueprintPlanner) SetPromptStore(store driven.PromptStore) {
	p.promptStore = store
}

// Plan derives the structural blueprint for a manifest. The returned
// blueprint always satisfies Validate; the second return value is a short
// rationale line for the caller's thinking trace.
func (p *BlueprintPlanner) Plan(ctx context.Context, manifest *domain.BrandManifest, identity *domain.SiteIdentity, category string) (*domain.SiteBlueprint, string) {
	start := time.Now()
	defer func() { p.recorder.ObserveStageDuration("plan", time.Since(start)) }()

	if p.llm == nil {
		return p.fallback(manifest), "Used the standard three-section layout (no model configured)."
	}

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		// Manifest is plain data; this is a programming error.
		panic(fmt.Sprintf("marshal manifest: %v", err))
	}

	prompt := fmt.Sprintf(p.loadPrompt(driven.PromptSiteBlueprint, defaultBlueprintPrompt),
		category, string(manifestJSON), contentAvailability(identity))

	raw, err := p.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   2000,
		Temperature: 0.5,
	})
	if err != nil {
		p.recorder.IncModelCall("plan", metrics.ResultError)
		logger.Warn("blueprint: model call failed (%v), using fallback blueprint", err)
		return p.fallback(manifest), "Layout planning unavailable, used the standard three-section layout."
	}

	blueprint, err := parseBlueprint(raw)
	if err != nil {
		p.recorder.IncModelCall("plan", metrics.ResultFallback)
		logger.Warn("blueprint: unparsable response (%v), using fallback blueprint", err)
		return p.fallback(manifest), "Layout plan was unreadable, used the standard three-section layout."
	}

	p.recorder.IncModelCall("plan", metrics.ResultSuccess)
	normaliseBlueprint(blueprint, manifest)
	if err := blueprint.Validate(); err != nil {
		logger.Warn("blueprint: plan failed validation (%v), using fallback blueprint", err)
		return p.fallback(manifest), "Layout plan was inconsistent, used the standard three-section layout."
	}

	return blueprint, fmt.Sprintf("Planned a %s layout with %d sections.",
		blueprint.DesignStyle, len(blueprint.Sections))
}

// parseBlueprint extracts and decodes the blueprint JSON from a raw response.
func parseBlueprint(raw string) (*domain.SiteBlueprint, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var blueprint domain.SiteBlueprint
	if err := json.Unmarshal([]byte(obj), &blueprint); err != nil {
		return nil, fmt.Errorf("decode blueprint: %w", err)
	}
	if len(blueprint.Sections) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	return &blueprint, nil
}

// normaliseBlueprint repairs recoverable defects in a model-produced plan:
// unknown design styles, unknown section types, missing color channels.
func normaliseBlueprint(b *domain.SiteBlueprint, manifest *domain.BrandManifest) {
	if !b.DesignStyle.IsValid() {
		b.DesignStyle = domain.DesignStyleModern
	}

	kept := b.Sections[:0]
	for _, s := range b.Sections {
		if s.Type.IsValid() && s.ID != "" {
			kept = append(kept, s)
		}
	}
	b.Sections = kept

	fb := fallbackScheme(manifest)
	if b.ColorScheme.Primary == "" {
		b.ColorScheme.Primary = fb.Primary
	}
	if b.ColorScheme.Secondary == "" {
		b.ColorScheme.Secondary = fb.Secondary
	}
	if b.ColorScheme.Accent == "" {
		b.ColorScheme.Accent = fb.Accent
	}
	if b.ColorScheme.Background == "" {
		b.ColorScheme.Background = fb.Background
	}
	if b.ColorScheme.Text == "" {
		b.ColorScheme.Text = fb.Text
	}
}

// fallback is the hard-coded three-section blueprint: hero, services (when
// the manifest has services) and contact.
func (p *BlueprintPlanner) fallback(manifest *domain.BrandManifest) *domain.SiteBlueprint {
	b := &domain.SiteBlueprint{
		DesignStyle: domain.DesignStyleModern,
		ColorScheme: fallbackScheme(manifest),
	}

	b.Sections = append(b.Sections, domain.SectionSpec{
		ID: "hero", Type: domain.SectionHero, Priority: 1, ImageNeeded: true,
	})
	b.NavLinks = append(b.NavLinks, domain.NavLink{Label: "Home", Href: "#hero"})

	if len(manifest.Services) > 0 {
		b.Sections = append(b.Sections, domain.SectionSpec{
			ID: "services", Type: domain.SectionServices, Priority: 2, ImageNeeded: true,
		})
		b.NavLinks = append(b.NavLinks, domain.NavLink{Label: "Services", Href: "#services"})
	}

	b.Sections = append(b.Sections, domain.SectionSpec{
		ID: "contact", Type: domain.SectionContact, Priority: 3,
	})
	b.NavLinks = append(b.NavLinks, domain.NavLink{Label: "Contact", Href: "#contact"})

	return b
}

// fallbackScheme copies the default color scheme from the manifest.
func fallbackScheme(manifest *domain.BrandManifest) domain.ColorScheme {
	return domain.ColorScheme{
		Primary:    manifest.PrimaryColor,
		Secondary:  manifest.SecondaryColor,
		Accent:     manifest.AccentColor,
		Background: "#ffffff",
		Text:       "#1a202c",
	}
}

// contentAvailability summarises which optional sections have content to
// back them, so the planner only proposes sections it can fill.
func contentAvailability(identity *domain.SiteIdentity) string {
	if identity == nil {
		return "services: no, testimonials: no, gallery: no, team: no, about copy: no"
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("services: %s", yesNo(identity.HasServices())))
	parts = append(parts, fmt.Sprintf("testimonials: %s", yesNo(identity.HasTestimonials())))
	parts = append(parts, fmt.Sprintf("gallery: %s", yesNo(len(identity.ImagesFor(domain.ImageRoleGallery)) > 0)))
	parts = append(parts, fmt.Sprintf("team: %s", yesNo(len(identity.Team) > 0)))
	parts = append(parts, fmt.Sprintf("about copy: %s", yesNo(len(identity.PageCopy) > 200)))
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func (p *BlueprintPlanner) loadPrompt(name, fallback string) string {
	if p.promptStore == nil {
		return fallback
	}
	prompt, err := p.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
