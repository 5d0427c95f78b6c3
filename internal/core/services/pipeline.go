package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
	"github.com/stacklight-labs/sitesmith/internal/htmlcheck"
	"github.com/stacklight-labs/sitesmith/internal/logger"
	"github.com/stacklight-labs/sitesmith/internal/metrics"
	"github.com/stacklight-labs/sitesmith/internal/postprocess"
)

// Ensure GenerationPipeline implements the driving port.
var _ driving.SiteGenerator = (*GenerationPipeline)(nil)

// PipelineVersion identifies the generation pipeline lineage. Stored on
// every produced document.
const PipelineVersion = "2"

// GenerationPipeline orchestrates a full site generation run: identity,
// brand manifest, blueprint, parallel section generation, assembly and
// post-processing. Only two things fail the run outright: an unavailable
// identity and a structurally empty result. Everything in between degrades.
type GenerationPipeline struct {
	manifests *ManifestExtractor
	planner   *BlueprintPlanner
	sections  *SectionGenerator
	extractor driven.IdentityExtractor
	imageGen  driven.ImageGenerator
	documents driven.DocumentStore
	recorder  metrics.Recorder
}

// NewGenerationPipeline wires the pipeline stages around one model service.
// extractor, imageGen and documents are optional collaborators; pass nil to
// disable extraction, image generation or persistence respectively.
func NewGenerationPipeline(
	llm driven.LLMService,
	extractor driven.IdentityExtractor,
	imageGen driven.ImageGenerator,
	documents driven.DocumentStore,
	recorder metrics.Recorder,
) *GenerationPipeline {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &GenerationPipeline{
		manifests: NewManifestExtractor(llm, recorder),
		planner:   NewBlueprintPlanner(llm, recorder),
		sections:  NewSectionGenerator(llm, recorder),
		extractor: extractor,
		imageGen:  imageGen,
		documents: documents,
		recorder:  recorder,
	}
}

// SetPromptStore propagates the prompt store to every stage.
func (p *GenerationPipeline) SetPromptStore(store driven.PromptStore) {
	p.manifests.SetPromptStore(store)
	p.planner.SetPromptStore(store)
	p.sections.SetPromptStore(store)
}

// SetBatching overrides section batching, for tests and local models.
func (p *GenerationPipeline) SetBatching(size int, delay time.Duration) {
	p.sections.SetBatching(size, delay)
}

// Generate runs the pipeline end to end and returns a finished, validated
// document.
func (p *GenerationPipeline) Generate(ctx context.Context, req driving.GenerateRequest) (*domain.GeneratedDocument, error) {
	start := time.Now()
	defer func() { p.recorder.ObserveGenerationDuration(time.Since(start)) }()

	identity, err := p.resolveIdentity(ctx, req)
	if err != nil {
		return nil, err
	}
	report(req.Progress, driving.StageIdentity, "", true, false)

	var thinking []string

	manifest, rationale := p.manifests.Extract(ctx, identity, req.Category)
	thinking = appendThinking(thinking, rationale)
	report(req.Progress, driving.StageManifest, "", true, false)

	blueprint, rationale := p.planner.Plan(ctx, manifest, identity, req.Category)
	thinking = appendThinking(thinking, rationale)
	report(req.Progress, driving.StagePlan, "", true, false)

	registry := domain.NewPlaceholderRegistry(identity)
	p.fillImageGaps(ctx, blueprint, manifest, registry)

	results := p.sections.GenerateAll(ctx, blueprint, manifest, registry, req.Progress)
	report(req.Progress, driving.StageSections, "", true, false)

	assembled := AssembleDocument(blueprint, manifest, results)
	report(req.Progress, driving.StageAssemble, "", true, false)

	final, validation, err := postprocess.NewPipeline(registry, blueprint.ColorScheme).Run(assembled)
	if err != nil {
		return nil, fmt.Errorf("post-process document: %w", err)
	}
	if !validation.Valid {
		logger.Warn("pipeline: stripped %d unresolved placeholder tokens", validation.Count)
	}

	if !htmlcheck.HasVisibleContent(final) {
		return nil, fmt.Errorf("validate document: %w", domain.ErrNoVisibleContent)
	}

	doc := &domain.GeneratedDocument{
		ID:              uuid.NewString(),
		BusinessName:    businessName(req, manifest),
		Category:        req.Category,
		HTML:            final,
		Thinking:        strings.Join(thinking, "\n"),
		PipelineVersion: PipelineVersion,
		Validation:      validation,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if p.documents != nil {
		if err := p.documents.Save(ctx, doc); err != nil {
			// Persistence is bookkeeping; the document itself is good.
			logger.Warn("pipeline: save document %s: %v", doc.ID, err)
		}
	}

	report(req.Progress, driving.StageFinalise, "", true, false)
	return doc, nil
}

// resolveIdentity returns the request's pre-extracted identity, or calls
// the extraction collaborator for the source URL.
func (p *GenerationPipeline) resolveIdentity(ctx context.Context, req driving.GenerateRequest) (*domain.SiteIdentity, error) {
	if req.Identity != nil {
		return req.Identity, nil
	}
	if req.SourceURL == "" {
		return nil, fmt.Errorf("%w: either an identity or a source URL is required", domain.ErrInvalidInput)
	}
	if p.extractor == nil {
		return nil, fmt.Errorf("%w: no extractor configured", domain.ErrIdentityUnavailable)
	}

	identity, err := p.extractor.Extract(ctx, req.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}
	if identity.BusinessName == "" {
		identity.BusinessName = req.BusinessName
	}
	return identity, nil
}

// fillImageGaps asks the image generation collaborator to produce assets
// for sections that need one but whose category bucket is empty. Failures
// leave the bucket empty; the token then resolves to an empty string.
func (p *GenerationPipeline) fillImageGaps(ctx context.Context, blueprint *domain.SiteBlueprint, manifest *domain.BrandManifest, registry *domain.PlaceholderRegistry) {
	if p.imageGen == nil {
		return
	}

	for _, spec := range blueprint.Sections {
		if !spec.ImageNeeded {
			continue
		}
		category := imageCategoryFor(spec.Type)
		if category == "" || len(registry.Buckets[category]) > 0 {
			continue
		}

		prompt := fmt.Sprintf("A %s photograph for the %s section of a %s website. Tone: %s. No text overlays.",
			manifest.Tone, spec.Type, manifest.BusinessName, manifest.Tone)
		url, err := p.imageGen.GenerateImage(ctx, prompt)
		if err != nil {
			logger.Warn("pipeline: generate %s image: %v", category, err)
			continue
		}
		registry.Add(category, url)
	}
}

// imageCategoryFor maps a section type to its placeholder category.
func imageCategoryFor(t domain.SectionType) string {
	switch t {
	case domain.SectionHero, domain.SectionAbout:
		return domain.PlaceholderHero
	case domain.SectionServices:
		return domain.PlaceholderService
	case domain.SectionGallery:
		return domain.PlaceholderGallery
	case domain.SectionTeam:
		return domain.PlaceholderTeam
	default:
		return ""
	}
}

func businessName(req driving.GenerateRequest, manifest *domain.BrandManifest) string {
	if manifest.BusinessName != "" {
		return manifest.BusinessName
	}
	return req.BusinessName
}

func appendThinking(thinking []string, rationale string) []string {
	if rationale == "" {
		return thinking
	}
	return append(thinking, rationale)
}

func report(progress driving.ProgressFunc, stage driving.ProgressStage, sectionID string, done, failed bool) {
	if progress == nil {
		return
	}
	progress(driving.ProgressEvent{Stage: stage, SectionID: sectionID, Done: done, Failed: failed})
}
