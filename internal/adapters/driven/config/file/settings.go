package file

import (
	"os"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// Configuration keys. The TOML file nests these as [llm] and [pipeline]
// tables; the store flattens them to dot notation.
const (
	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMAPIKey   = "llm.api_key"
	KeyLLMBaseURL  = "llm.base_url"

	KeyBatchSize          = "pipeline.batch_size"
	KeyBatchDelayMillis   = "pipeline.batch_delay_ms"
	KeyIdentityServiceURL = "pipeline.identity_service_url"
	KeyImageServiceURL    = "pipeline.image_service_url"
)

// Environment variables override stored values, so deployments can keep
// keys out of the config file.
const (
	envAPIKey          = "SITESMITH_API_KEY"
	envAnthropicAPIKey = "ANTHROPIC_API_KEY"
	envOpenAIAPIKey    = "OPENAI_API_KEY"
)

// LoadLLMSettings builds model settings from the config store, applying
// environment overrides for the API key.
func LoadLLMSettings(store driven.ConfigStore) domain.LLMSettings {
	settings := domain.LLMSettings{
		Provider: domain.AIProvider(store.GetString(KeyLLMProvider)),
		Model:    store.GetString(KeyLLMModel),
		APIKey:   store.GetString(KeyLLMAPIKey),
		BaseURL:  store.GetString(KeyLLMBaseURL),
	}

	if key := os.Getenv(envAPIKey); key != "" {
		settings.APIKey = key
	} else if settings.APIKey == "" {
		switch settings.Provider {
		case domain.AIProviderAnthropic:
			settings.APIKey = os.Getenv(envAnthropicAPIKey)
		case domain.AIProviderOpenAI:
			settings.APIKey = os.Getenv(envOpenAIAPIKey)
		}
	}

	return settings
}

// LoadPipelineSettings builds pipeline settings from the config store.
// Zero values mean "use the built-in defaults".
func LoadPipelineSettings(store driven.ConfigStore) domain.PipelineSettings {
	return domain.PipelineSettings{
		SectionBatchSize:   store.GetInt(KeyBatchSize),
		BatchDelayMillis:   store.GetInt(KeyBatchDelayMillis),
		IdentityServiceURL: store.GetString(KeyIdentityServiceURL),
		ImageServiceURL:    store.GetString(KeyImageServiceURL),
	}
}
