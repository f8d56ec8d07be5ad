package cli

import (
	"context"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driving"
)

// mockQuery implements driving.QueryService with canned data.
type mockQuery struct {
	answer   *domain.Answer
	passages []domain.Passage
	err      error
}

func (m *mockQuery) Ask(_ context.Context, question string) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrMissingQuestion
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockQuery) Search(_ context.Context, question string, _ int) ([]domain.Passage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrMissingQuestion
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.passages, nil
}

// mockIngest implements driving.IngestService with canned results.
type mockIngest struct {
	err  error
	keys []string
}

func (m *mockIngest) IngestObject(_ context.Context, key string) (*driving.IngestResult, error) {
	m.keys = append(m.keys, key)
	if m.err != nil {
		return nil, m.err
	}
	return &driving.IngestResult{
		Key:        key,
		DocumentID: domain.DocumentID(key),
		Chunks:     2,
		Pages:      1,
	}, nil
}

func (m *mockIngest) IngestBatch(ctx context.Context, keys []string) (*driving.BatchResult, error) {
	batch := &driving.BatchResult{Errors: make(map[string]error)}
	for _, key := range keys {
		res, err := m.IngestObject(ctx, key)
		if err != nil {
			batch.Errors[key] = err
			continue
		}
		batch.Results = append(batch.Results, *res)
	}
	return batch, nil
}

// setupTestServices injects mock services and returns a cleanup restoring
// the previous wiring.
func setupTestServices() func() {
	prevQuery, prevIngest := queryService, ingestService

	queryService = &mockQuery{
		answer: &domain.Answer{
			Answer: "Mock answer [1]",
			References: []domain.Passage{
				{Text: "mock passage", FileName: "mock.pdf", SourceKey: "uploads/mock.pdf", PageStart: 1, Score: 0.87},
			},
		},
		passages: []domain.Passage{
			{Text: "mock passage", FileName: "mock.pdf", SourceKey: "uploads/mock.pdf", PageStart: 1, Score: 0.87},
		},
	}
	ingestService = &mockIngest{}

	return func() {
		queryService, ingestService = prevQuery, prevIngest
	}
}
