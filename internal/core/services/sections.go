package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
	"github.com/stacklight-labs/sitesmith/internal/logger"
	"github.com/stacklight-labs/sitesmith/internal/metrics"
)

// Ensure SectionGenerator supports prompt customisation.
var _ driven.PromptStoreAware = (*SectionGenerator)(nil)

// Batch scheduling defaults. Sections run in small batches with a pause in
// between to stay under the model API's rate limits.
const (
	DefaultBatchSize  = 2
	DefaultBatchDelay = 1500 * time.Millisecond

	// rateLimitBackoff is the pause before the single retry after a 429.
	rateLimitBackoff = 5 * time.Second

	// proactiveRate throttles model calls ahead of the API's own limits.
	proactiveRate = 0.8
)

// defaultSectionPrompt is the fallback prompt when no PromptStore is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultSectionPrompt = `You are a web developer writing one self-contained HTML section of a marketing site.

Section type: %s

Brand facts:
%s

Instructions:
%s

Rules:
- Output ONLY the HTML fragment for this one section, no markdown fencing, no commentary, no <html> or <body> wrapper.
- The root element must be <section id="%s">.
- Style with inline CSS and the shared custom properties var(--ss-primary), var(--ss-secondary), var(--ss-accent); translucent overlays may use rgba(var(--ss-primary-rgb), 0.5).
- For entrance animation add class "ss-animate" to animated elements and "ss-delay-1" through "ss-delay-4" to stagger them.
- Where an image belongs, use the exact placeholder token given in the instructions as the src value. Never invent image URLs.`

// SectionGenerator produces one markup fragment per planned section. Sections
// are processed in priority order but executed in fixed-size batches so slow
// calls never exceed the model API's rate limits, with a fixed delay between
// batches. A rate-limited call is retried once after a backoff; any other
// failure degrades that section to a labeled placeholder block.
type SectionGenerator struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	recorder    metrics.Recorder
	limiter     *rate.Limiter
	batchSize   int
	batchDelay  time.Duration
}

// NewSectionGenerator creates a new section generator with default batching.
func NewSectionGenerator(llm driven.LLMService, recorder metrics.Recorder) *SectionGenerator {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &SectionGenerator{
		llm:        llm,
		recorder:   recorder,
		limiter:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
		batchSize:  DefaultBatchSize,
		batchDelay: DefaultBatchDelay,
	}
}

// SetBatching overrides the batch size and inter-batch delay.
func (g *SectionGenerator) SetBatching(size int, delay time.Duration) {
	if size > 0 {
		g.batchSize = size
	}
	if delay >= 0 {
		g.batchDelay = delay
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (g *SectionGenerator) SetPromptStore(store driven.PromptStore) {
	g.promptStore = store
}

// GenerateAll produces exactly one SectionResult per SectionSpec in the
// blueprint, success or not. Each generation receives an immutable snapshot
// of the manifest and blueprint; nothing is shared between concurrent calls.
func (g *SectionGenerator) GenerateAll(
	ctx context.Context,
	blueprint *domain.SiteBlueprint,
	manifest *domain.BrandManifest,
	registry *domain.PlaceholderRegistry,
	progress driving.ProgressFunc,
) []domain.SectionResult {
	specs := make([]domain.SectionSpec, len(blueprint.Sections))
	copy(specs, blueprint.Sections)
	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].Priority < specs[j].Priority
	})

	results := make([]domain.SectionResult, len(specs))

	for batchStart := 0; batchStart < len(specs); batchStart += g.batchSize {
		batchEnd := batchStart + g.batchSize
		if batchEnd > len(specs) {
			batchEnd = len(specs)
		}

		var wg sync.WaitGroup
		for i := batchStart; i < batchEnd; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = g.generateOne(ctx, specs[i], manifest, registry)
				if progress != nil {
					progress(driving.ProgressEvent{
						Stage:     driving.StageSections,
						SectionID: specs[i].ID,
						Done:      true,
						Failed:    !results[i].Success,
					})
				}
			}(i)
		}
		wg.Wait()

		if batchEnd < len(specs) && g.batchDelay > 0 {
			select {
			case <-ctx.Done():
				// Remaining sections degrade to placeholders below.
			case <-time.After(g.batchDelay):
			}
		}
	}

	// Post-condition: one result per spec, in the blueprint's spec order.
	for i := range results {
		if results[i].ID == "" {
			results[i] = placeholderResult(specs[i], ctx.Err())
		}
	}

	return results
}

// generateOne runs the model call for a single section, retrying once after
// a rate-limit backoff.
func (g *SectionGenerator) generateOne(
	ctx context.Context,
	spec domain.SectionSpec,
	manifest *domain.BrandManifest,
	registry *domain.PlaceholderRegistry,
) domain.SectionResult {
	if g.llm == nil {
		return placeholderResult(spec, domain.ErrLLMUnavailable)
	}

	fragment, err := g.callModel(ctx, spec, manifest, registry)
	if errors.Is(err, domain.ErrRateLimited) {
		g.recorder.IncModelCall("section", metrics.ResultRateLimited)
		logger.Warn("section %s: rate limited, retrying after backoff", spec.ID)
		select {
		case <-ctx.Done():
			return placeholderResult(spec, ctx.Err())
		case <-time.After(rateLimitBackoff):
		}
		fragment, err = g.callModel(ctx, spec, manifest, registry)
	}
	if err != nil {
		g.recorder.IncModelCall("section", metrics.ResultError)
		g.recorder.IncSectionResult(string(spec.Type), metrics.ResultDegraded)
		logger.Warn("section %s: generation failed (%v), degrading to placeholder", spec.ID, err)
		return placeholderResult(spec, err)
	}

	g.recorder.IncModelCall("section", metrics.ResultSuccess)
	g.recorder.IncSectionResult(string(spec.Type), metrics.ResultSuccess)

	return domain.SectionResult{
		ID:      spec.ID,
		Type:    spec.Type,
		HTML:    fragment,
		Success: true,
	}
}

// callModel performs one throttled generation call and sanitises the output.
func (g *SectionGenerator) callModel(
	ctx context.Context,
	spec domain.SectionSpec,
	manifest *domain.BrandManifest,
	registry *domain.PlaceholderRegistry,
) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(g.loadPrompt(driven.PromptSection, defaultSectionPrompt),
		spec.Type, sectionBrandFacts(spec, manifest), sectionInstructions(spec, registry), spec.ID)

	raw, err := g.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   3000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	fragment := stripCodeFences(raw)
	if strings.TrimSpace(fragment) == "" {
		return "", domain.ErrEmptyPayload
	}
	return fragment, nil
}

// placeholderResult is the degraded fragment for a failed section: a labeled
// gray block that keeps the page layout intact instead of breaking it.
func placeholderResult(spec domain.SectionSpec, err error) domain.SectionResult {
	label := strings.ToUpper(string(spec.Type))
	html := fmt.Sprintf(
		`<section id=%q style="background:#e2e8f0;color:#4a5568;padding:64px 24px;text-align:center;">`+
			`<p>%s section is temporarily unavailable.</p></section>`,
		spec.ID, label)
	return domain.SectionResult{
		ID:   spec.ID,
		Type: spec.Type,
		HTML: html,
		Err:  err,
	}
}

// sectionBrandFacts embeds only the brand facts relevant to this section
// type, keeping each prompt small.
func sectionBrandFacts(spec domain.SectionSpec, m *domain.BrandManifest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s\n", m.BusinessName)
	fmt.Fprintf(&b, "Tone: %s\n", m.Tone)
	fmt.Fprintf(&b, "Headline font: %s; body font: %s\n", m.FontHeadline, m.FontBody)

	switch spec.Type {
	case domain.SectionHero:
		fmt.Fprintf(&b, "Hero headline: %s\n", m.HeroHeadline)
		fmt.Fprintf(&b, "Hero subheadline: %s\n", m.HeroSubheadline)
		fmt.Fprintf(&b, "Call to action: %s\n", m.CTAText)
	case domain.SectionServices:
		for _, svc := range m.Services {
			fmt.Fprintf(&b, "Service: %s - %s\n", svc.Name, svc.Description)
		}
	case domain.SectionContact, domain.SectionCTA:
		fmt.Fprintf(&b, "Call to action: %s\n", m.CTAText)
		if m.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", m.Phone)
		}
		if m.Email != "" {
			fmt.Fprintf(&b, "Email: %s\n", m.Email)
		}
		if m.Address != "" {
			fmt.Fprintf(&b, "Address: %s\n", m.Address)
		}
	default:
		if m.Tagline != "" {
			fmt.Fprintf(&b, "Tagline: %s\n", m.Tagline)
		}
	}

	return b.String()
}

// sectionInstructions combines the planner's content hints with the image
// tokens matching this section's context.
func sectionInstructions(spec domain.SectionSpec, registry *domain.PlaceholderRegistry) string {
	var b strings.Builder
	if spec.ContentHints != "" {
		b.WriteString(spec.ContentHints)
		b.WriteString("\n")
	}

	if spec.ImageNeeded {
		for _, token := range imageTokensFor(spec, registry) {
			fmt.Fprintf(&b, "Image placeholder available: %s\n", token)
		}
	}

	if b.Len() == 0 {
		b.WriteString("(no additional instructions)")
	}
	return b.String()
}

// imageTokensFor picks symbolic image tokens from the registry buckets by
// section context. Tokens are emitted even for thin buckets; unresolvable
// indices post-process to empty strings rather than broken references.
func imageTokensFor(spec domain.SectionSpec, registry *domain.PlaceholderRegistry) []string {
	bucketLen := func(category string) int {
		if registry == nil {
			return 0
		}
		return len(registry.Buckets[category])
	}

	switch spec.Type {
	case domain.SectionHero:
		return []string{domain.IndexedToken(domain.PlaceholderHero, 1)}
	case domain.SectionServices:
		n := bucketLen(domain.PlaceholderService)
		if n == 0 {
			n = 1
		}
		tokens := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			tokens = append(tokens, domain.IndexedToken(domain.PlaceholderService, i))
		}
		return tokens
	case domain.SectionGallery:
		n := bucketLen(domain.PlaceholderGallery)
		if n == 0 {
			return nil
		}
		tokens := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			tokens = append(tokens, domain.IndexedToken(domain.PlaceholderGallery, i))
		}
		return tokens
	case domain.SectionTeam:
		n := bucketLen(domain.PlaceholderTeam)
		tokens := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			tokens = append(tokens, domain.IndexedToken(domain.PlaceholderTeam, i))
		}
		return tokens
	case domain.SectionAbout:
		return []string{domain.IndexedToken(domain.PlaceholderHero, 2)}
	default:
		return nil
	}
}

// stripCodeFences removes a surrounding markdown code fence if the model
// added one despite instructions.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func (g *SectionGenerator) loadPrompt(name, fallback string) string {
	if g.promptStore == nil {
		return fallback
	}
	prompt, err := g.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
