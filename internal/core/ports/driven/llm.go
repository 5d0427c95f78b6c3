package driven

import (
	"context"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
)

// LLMService provides generative model operations for every pipeline stage.
// The model is treated as an untrusted, possibly-truncating, possibly
// rate-limited black box: implementations surface HTTP 429 responses as
// domain.ErrRateLimited so the batch scheduler can react, and callers must
// defensively parse all output.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI (GPT models)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation. Messages may carry image
	// attachments for providers that accept them.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a pipeline run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string

	// Images are optional attachments included with the message.
	Images []domain.Attachment
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
