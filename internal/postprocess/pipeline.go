// Package postprocess resolves placeholder tokens and injects shared style
// blocks into an assembled (or model-emitted) document.
//
// The pipeline chains ordered processors over an immutable document value
// and ends with validation: any token still matching the general placeholder
// pattern is stripped rather than left as visibly broken markup, and the
// stripped set is reported for diagnostics. Running the pipeline twice on an
// already-resolved document is a no-op beyond re-validation.
package postprocess

import (
	"fmt"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// Processor is one ordered document transformation.
type Processor interface {
	// Name identifies the processor in errors and logs.
	Name() string

	// Process returns the transformed document.
	Process(doc string) (string, error)
}

// Pipeline chains multiple Processors and runs them in order, then
// validates the result.
type Pipeline struct {
	processors []Processor
}

// NewPipeline creates the default processing pipeline for a registry and
// color scheme: logo resolution, numbered image resolution, color variable
// injection and animation style injection, in that fixed order.
func NewPipeline(registry *domain.PlaceholderRegistry, scheme domain.ColorScheme) *Pipeline {
	return &Pipeline{
		processors: []Processor{
			&logoResolver{registry: registry},
			&imageResolver{registry: registry},
			&colorInjector{scheme: scheme},
			&animationInjector{},
		},
	}
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor Processor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Run processes the document through all processors in order, then strips
// and reports any remaining placeholder tokens.
func (p *Pipeline) Run(doc string) (string, domain.ValidationResult, error) {
	for _, processor := range p.processors {
		var err error
		doc, err = processor.Process(doc)
		if err != nil {
			return doc, domain.ValidationResult{}, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	doc, result := stripRemaining(doc)
	return doc, result, nil
}

// stripRemaining removes any token still matching the placeholder pattern.
// A document is only handed to callers token-free; stripped tokens are
// reported, never rendered.
func stripRemaining(doc string) (string, domain.ValidationResult) {
	remaining := domain.PlaceholderPattern.FindAllString(doc, -1)
	if len(remaining) == 0 {
		return doc, domain.ValidationResult{Valid: true}
	}

	doc = domain.PlaceholderPattern.ReplaceAllString(doc, "")
	return doc, domain.ValidationResult{
		Valid:      false,
		Unresolved: remaining,
		Count:      len(remaining),
	}
}
