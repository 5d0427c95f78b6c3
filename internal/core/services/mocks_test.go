package services

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// mockLLM is a hand-written mock of driven.LLMService.
type mockLLM struct {
	generateFunc func(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error)
	chatFunc     func(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error)

	generateCalls []string
	chatCalls     [][]driven.ChatMessage
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.generateCalls = append(m.generateCalls, prompt)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, opts)
	}
	return "", nil
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.chatCalls = append(m.chatCalls, messages)
	if m.chatFunc != nil {
		return m.chatFunc(ctx, messages, opts)
	}
	return "", nil
}

func (m *mockLLM) ModelName() string { return "mock-model" }

func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

// mockPromptStore is a hand-written mock of driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

// mockExtractor is a hand-written mock of driven.IdentityExtractor.
type mockExtractor struct {
	extractFunc func(ctx context.Context, sourceURL string) (*domain.SiteIdentity, error)
	lastURL     string
}

func (m *mockExtractor) Extract(ctx context.Context, sourceURL string) (*domain.SiteIdentity, error) {
	m.lastURL = sourceURL
	if m.extractFunc != nil {
		return m.extractFunc(ctx, sourceURL)
	}
	return &domain.SiteIdentity{BusinessName: "Bella's Bakery"}, nil
}

// mockImageGen is a hand-written mock of driven.ImageGenerator.
type mockImageGen struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (m *mockImageGen) GenerateImage(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return "asset://generated", nil
}

// mockAssetStore is a hand-written mock of driven.AssetStore.
type mockAssetStore struct {
	putFunc func(ctx context.Context, data []byte, mediaType string) (string, error)
}

func (m *mockAssetStore) Put(ctx context.Context, data []byte, mediaType string) (string, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, data, mediaType)
	}
	return "asset://stored", nil
}

func (m *mockAssetStore) Get(_ context.Context, _ string) ([]byte, string, error) {
	return nil, "", domain.ErrNotFound
}

// testIdentity is a fully populated identity for pipeline tests.
func testIdentity() *domain.SiteIdentity {
	return &domain.SiteIdentity{
		BusinessName: "Bella's Bakery",
		Tagline:      "Fresh every morning",
		Colors:       []string{"#112233", "#445566", "#778899"},
		Services:     []string{"Wedding cakes", "Sourdough subscription"},
		Testimonials: []domain.Testimonial{{Quote: "Best bread in town", Author: "Sam"}},
		Contact: domain.ContactInfo{
			Phone:   "555-0100",
			Email:   "hello@bellasbakery.example",
			Address: "12 Baker St",
		},
		Logo: domain.ImageRef{URL: "asset://logo"},
		Images: map[domain.ImageRole][]domain.ImageRef{
			domain.ImageRoleHero:    {{URL: "asset://hero-1"}},
			domain.ImageRoleGallery: {{URL: "asset://g-1"}, {URL: "asset://g-2"}},
		},
	}
}
