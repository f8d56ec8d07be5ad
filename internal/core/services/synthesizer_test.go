package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
)

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response   string
	err        error
	calls      int
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string { return "mock" }
func (m *mockLLMService) Close() error      { return nil }

func TestSynthesize_EmptyPassagesShortCircuits(t *testing.T) {
	llm := &mockLLMService{response: "should not be used"}
	s := NewSynthesizer(llm)

	answer, err := s.Synthesize(context.Background(), "anything?", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, answer)
	assert.Zero(t, llm.calls, "generative model must not be invoked without passages")
}

func TestSynthesize_BuildsCitedPrompt(t *testing.T) {
	llm := &mockLLMService{response: "grounded answer"}
	s := NewSynthesizer(llm)

	passages := []domain.Passage{
		{Text: "alpha facts"},
		{Text: "beta facts"},
	}

	answer, err := s.Synthesize(context.Background(), "what about alpha?", passages)
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)
	require.Equal(t, 1, llm.calls)

	assert.Contains(t, llm.lastPrompt, "[1] alpha facts")
	assert.Contains(t, llm.lastPrompt, "[2] beta facts")
	assert.Contains(t, llm.lastPrompt, "Question: what about alpha?")
	assert.Contains(t, llm.lastPrompt, "Answer strictly using the provided context")
	assert.Contains(t, llm.lastPrompt, "say you don't know")
}

func TestSynthesize_LowTemperatureBoundedOutput(t *testing.T) {
	llm := &mockLLMService{response: "ok"}
	s := NewSynthesizer(llm)

	_, err := s.Synthesize(context.Background(), "q", []domain.Passage{{Text: "p"}})
	require.NoError(t, err)

	assert.Equal(t, 300, llm.lastOpts.MaxTokens)
	assert.InDelta(t, 0.2, llm.lastOpts.Temperature, 1e-9)
	assert.InDelta(t, 0.9, llm.lastOpts.TopP, 1e-9)
}

func TestSynthesize_EmptyModelResponse(t *testing.T) {
	llm := &mockLLMService{response: ""}
	s := NewSynthesizer(llm)

	answer, err := s.Synthesize(context.Background(), "q", []domain.Passage{{Text: "p"}})
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestSynthesize_GenerateError(t *testing.T) {
	boom := errors.New("model unavailable")
	s := NewSynthesizer(&mockLLMService{err: boom})

	_, err := s.Synthesize(context.Background(), "q", []domain.Passage{{Text: "p"}})
	assert.ErrorIs(t, err, boom)
}

func TestSynthesize_NilLLMWithPassages(t *testing.T) {
	s := NewSynthesizer(nil)

	_, err := s.Synthesize(context.Background(), "q", []domain.Passage{{Text: "p"}})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
