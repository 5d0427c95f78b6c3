package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
)

func testBlueprint() *domain.SiteBlueprint {
	return &domain.SiteBlueprint{
		DesignStyle: domain.DesignStyleModern,
		Sections: []domain.SectionSpec{
			{ID: "hero", Type: domain.SectionHero, Priority: 1, ImageNeeded: true},
			{ID: "services", Type: domain.SectionServices, Priority: 2, ImageNeeded: true},
			{ID: "contact", Type: domain.SectionContact, Priority: 3},
		},
		ColorScheme: domain.ColorScheme{Primary: "#8b4513"},
	}
}

// newFastSectionGenerator disables inter-batch delays for tests.
func newFastSectionGenerator(llm driven.LLMService) *SectionGenerator {
	g := NewSectionGenerator(llm, nil)
	g.SetBatching(3, 0)
	g.limiter.SetLimit(1000)
	return g
}

func TestSectionGenerator_OneResultPerSpec(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	llm := &mockLLM{
		generateFunc: func(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return fmt.Sprintf("<section><h2>Generated</h2><p>%d</p></section>", len(prompt)), nil
		},
	}

	g := newFastSectionGenerator(llm)
	registry := domain.NewPlaceholderRegistry(testIdentity())
	results := g.GenerateAll(context.Background(), testBlueprint(), testManifest(), registry, nil)

	require.Len(t, results, 3)
	assert.Equal(t, 3, calls)
	for _, r := range results {
		assert.True(t, r.Success, "section %s", r.ID)
		assert.Contains(t, r.HTML, "Generated")
	}
}

func TestSectionGenerator_FailedSectionDegradesToPlaceholder(t *testing.T) {
	llm := &mockLLM{
		generateFunc: func(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
			if strings.Contains(prompt, "Section type: services") {
				return "", errors.New("boom")
			}
			return "<section><p>ok</p></section>", nil
		},
	}

	g := newFastSectionGenerator(llm)
	registry := domain.NewPlaceholderRegistry(testIdentity())
	results := g.GenerateAll(context.Background(), testBlueprint(), testManifest(), registry, nil)

	require.Len(t, results, 3)
	var failed *domain.SectionResult
	for i := range results {
		if results[i].ID == "services" {
			failed = &results[i]
		}
	}
	require.NotNil(t, failed)
	assert.False(t, failed.Success)
	assert.Error(t, failed.Err)
	assert.Contains(t, failed.HTML, `id="services"`)
	assert.Contains(t, failed.HTML, "SERVICES section is temporarily unavailable")
}

func TestSectionGenerator_RetriesOnceAfterRateLimit(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	llm := &mockLLM{
		generateFunc: func(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
			mu.Lock()
			attempts++
			n := attempts
			mu.Unlock()
			if n == 1 {
				return "", domain.ErrRateLimited
			}
			return "<section><p>ok</p></section>", nil
		},
	}

	g := newFastSectionGenerator(llm)
	spec := domain.SectionSpec{ID: "hero", Type: domain.SectionHero, Priority: 1}
	result := g.generateOne(context.Background(), spec, testManifest(), domain.NewPlaceholderRegistry(nil))

	assert.True(t, result.Success)
	assert.Equal(t, 2, attempts)
}

func TestSectionGenerator_NoModelDegradesAll(t *testing.T) {
	g := newFastSectionGenerator(nil)
	registry := domain.NewPlaceholderRegistry(nil)
	results := g.GenerateAll(context.Background(), testBlueprint(), testManifest(), registry, nil)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.ErrorIs(t, r.Err, domain.ErrLLMUnavailable)
	}
}

func TestSectionGenerator_ReportsPerSectionProgress(t *testing.T) {
	llm := &mockLLM{
		generateFunc: func(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
			return "<section><p>ok</p></section>", nil
		},
	}

	var mu sync.Mutex
	var events []driving.ProgressEvent
	progress := func(ev driving.ProgressEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}

	g := newFastSectionGenerator(llm)
	registry := domain.NewPlaceholderRegistry(testIdentity())
	g.GenerateAll(context.Background(), testBlueprint(), testManifest(), registry, progress)

	require.Len(t, events, 3)
	ids := make(map[string]bool)
	for _, ev := range events {
		assert.Equal(t, driving.StageSections, ev.Stage)
		assert.True(t, ev.Done)
		assert.False(t, ev.Failed)
		ids[ev.SectionID] = true
	}
	assert.Len(t, ids, 3)
}

func TestSectionGenerator_PromptCarriesImageTokens(t *testing.T) {
	var mu sync.Mutex
	prompts := make(map[string]string)
	llm := &mockLLM{
		generateFunc: func(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
			mu.Lock()
			for _, id := range []string{"hero", "services", "contact"} {
				if strings.Contains(prompt, fmt.Sprintf("<section id=%q>", id)) {
					prompts[id] = prompt
				}
			}
			mu.Unlock()
			return "<section><p>ok</p></section>", nil
		},
	}

	g := newFastSectionGenerator(llm)
	registry := domain.NewPlaceholderRegistry(testIdentity())
	g.GenerateAll(context.Background(), testBlueprint(), testManifest(), registry, nil)

	assert.Contains(t, prompts["hero"], domain.IndexedToken(domain.PlaceholderHero, 1))
	// The services bucket is empty so a single token is still offered.
	assert.Contains(t, prompts["services"], domain.IndexedToken(domain.PlaceholderService, 1))
	assert.NotContains(t, prompts["contact"], "Image placeholder")
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, "<p>hi</p>", stripCodeFences("<p>hi</p>"))
	assert.Equal(t, "<p>hi</p>", stripCodeFences("```html\n<p>hi</p>\n```"))
	assert.Equal(t, "<p>hi</p>", stripCodeFences("```\n<p>hi</p>\n```"))
	assert.Equal(t, "<p>hi</p>", stripCodeFences("  <p>hi</p>  "))
}
