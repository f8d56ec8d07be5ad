package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/logger"
)

// FallbackAnswer is returned without invoking the model when retrieval
// produced no passages. A cost and latency guard, not an error.
const FallbackAnswer = "I don't know based on the indexed documents."

// Default generation configuration: short, low-temperature answers.
var defaultGenerateOptions = driven.GenerateOptions{
	MaxTokens:   300,
	Temperature: 0.2,
	TopP:        0.9,
}

// Synthesizer builds a grounded prompt from ranked passages and asks the
// generative model for an answer bound strictly to that context.
type Synthesizer struct {
	llm  driven.LLMService
	opts driven.GenerateOptions
}

// NewSynthesizer creates a synthesizer over the given LLM service.
func NewSynthesizer(llm driven.LLMService) *Synthesizer {
	return &Synthesizer{llm: llm, opts: defaultGenerateOptions}
}

// Synthesize produces a grounded answer from the passages, which must
// already be ranked. An empty passage list short-circuits to the fixed
// fallback. An empty model response is returned as-is; the caller surfaces
// it as "no answer" rather than an error.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, passages []domain.Passage) (string, error) {
	if len(passages) == 0 {
		logger.Debug("No passages retrieved, returning fallback answer")
		return FallbackAnswer, nil
	}
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt := buildPrompt(question, passages)
	logger.Debug("Prompt length: %d chars, %d passages", len(prompt), len(passages))

	answer, err := s.llm.Generate(ctx, prompt, s.opts)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// buildPrompt concatenates passages in ranked order, each under a 1-based
// citation marker, and binds the model to the supplied context.
func buildPrompt(question string, passages []domain.Passage) string {
	var ctx strings.Builder
	for i, p := range passages {
		if i > 0 {
			ctx.WriteString("\n\n")
		}
		fmt.Fprintf(&ctx, "[%d] %s", i+1, p.Text)
	}

	return fmt.Sprintf(
		"You are a helpful assistant for internal document QA. "+
			"Answer strictly using the provided context. "+
			"If the answer is not in the context, say you don't know.\n\n"+
			"Context:\n%s\n\nQuestion: %s\nAnswer:",
		ctx.String(), question)
}
