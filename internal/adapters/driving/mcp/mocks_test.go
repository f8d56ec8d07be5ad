package mcp

import (
	"context"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driving"
)

// mockQueryService implements driving.QueryService for tool tests.
type mockQueryService struct {
	answer    *domain.Answer
	passages  []domain.Passage
	err       error
	lastK     int
	questions []string
}

func (m *mockQueryService) Ask(_ context.Context, question string) (*domain.Answer, error) {
	m.questions = append(m.questions, question)
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockQueryService) Search(_ context.Context, question string, k int) ([]domain.Passage, error) {
	m.questions = append(m.questions, question)
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.passages, nil
}

// mockIngestService implements driving.IngestService for tool tests.
type mockIngestService struct {
	result *driving.IngestResult
	err    error
	keys   []string
}

func (m *mockIngestService) IngestObject(_ context.Context, key string) (*driving.IngestResult, error) {
	m.keys = append(m.keys, key)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockIngestService) IngestBatch(ctx context.Context, keys []string) (*driving.BatchResult, error) {
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
