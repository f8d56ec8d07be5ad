package driven

import "context"

// LLMService produces grounded answer text from a prompt.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (GPT-4 family)
//   - Anthropic (Claude family)
type LLMService interface {
	// Generate produces text completion from a prompt. Implementations
	// concatenate all text fragments of the model's structured response;
	// a response with no text fragments yields an empty string, not an
	// error.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens caps the length of the generated answer.
	MaxTokens int

	// Temperature controls randomness (lower = more deterministic).
	Temperature float64

	// TopP is the nucleus sampling cutoff.
	TopP float64
}
