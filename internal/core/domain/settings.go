package domain

// AIProvider identifies a generative model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local models)"
	case AIProviderOpenAI:
		return "OpenAI (cloud API)"
	case AIProviderAnthropic:
		return "Anthropic (cloud API)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns all supported providers in display order.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns the default model per provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o",
		AIProviderAnthropic: "claude-sonnet-4-5",
	}
}

// LLMSettings configures the generative model used by every pipeline stage.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	APIKey   string
	BaseURL  string
}

// IsConfigured returns true if the settings identify a usable provider.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// PipelineSettings configures generation pipeline behaviour.
type PipelineSettings struct {
	// SectionBatchSize is how many section generations run concurrently.
	SectionBatchSize int

	// BatchDelayMillis is the pause between section batches.
	BatchDelayMillis int

	// IdentityServiceURL is the identity extraction collaborator endpoint.
	IdentityServiceURL string

	// ImageServiceURL is the image generation collaborator endpoint.
	ImageServiceURL string
}
