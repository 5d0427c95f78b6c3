package driving

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// ProgressStage identifies which pipeline stage a progress event refers to.
type ProgressStage string

// Pipeline stages reported during generation.
const (
	StageIdentity ProgressStage = "identity"
	StageManifest ProgressStage = "manifest"
	StagePlan     ProgressStage = "plan"
	StageSections ProgressStage = "sections"
	StageAssemble ProgressStage = "assemble"
	StageFinalise ProgressStage = "finalise"
)

// ProgressEvent reports pipeline progress to the caller. SectionID is set
// only for per-section events during the sections stage.
type ProgressEvent struct {
	Stage     ProgressStage
	SectionID string
	Message   string

	// Done is true when the stage (or section) has completed.
	Done bool

	// Failed is true when a section degraded to a placeholder fragment.
	Failed bool
}

// ProgressFunc receives progress events. It may be nil.
// Implementations must not block; events are advisory.
type ProgressFunc func(ProgressEvent)

// GenerateRequest carries one site generation request. Either SourceURL or
// Identity must be set; when both are present Identity wins and no
// extraction call is made.
type GenerateRequest struct {
	SourceURL    string
	BusinessName string
	Category     string

	// Identity is the pre-extracted site identity, when the caller
	// already has one.
	Identity *domain.SiteIdentity

	// Progress receives stage and section events. Optional.
	Progress ProgressFunc
}

// SiteGenerator runs the full generation pipeline: manifest, blueprint,
// sections, assembly and post-processing.
type SiteGenerator interface {
	// Generate produces a finished, validated document.
	Generate(ctx context.Context, req GenerateRequest) (*domain.GeneratedDocument, error)
}
