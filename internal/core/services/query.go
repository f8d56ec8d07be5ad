package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/core/ports/driving"
	"github.com/askitty/askitty/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers questions grounded on the ingested corpus: embed the
// question, scan and rank every stored chunk, synthesize from the top hits.
type QueryService struct {
	embedder    driven.EmbeddingService
	store       driven.ChunkStore
	retriever   *Retriever
	synthesizer *Synthesizer
	scanCeiling int
}

// NewQueryService creates a query service. k caps the retrieved passages
// (non-positive means DefaultTopK); scanCeiling bounds the corpus scan
// (non-positive means driven.DefaultScanCeiling).
func NewQueryService(
	embedder driven.EmbeddingService,
	store driven.ChunkStore,
	llm driven.LLMService,
	k int,
	scanCeiling int,
) *QueryService {
	if scanCeiling <= 0 {
		scanCeiling = driven.DefaultScanCeiling
	}
	return &QueryService{
		embedder:    embedder,
		store:       store,
		retriever:   NewRetriever(k),
		synthesizer: NewSynthesizer(llm),
		scanCeiling: scanCeiling,
	}
}

// Ask answers the question with citations.
func (s *QueryService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Query")

	passages, err := s.Search(ctx, question, 0)
	if err != nil {
		return nil, err
	}

	answer, err := s.synthesizer.Synthesize(ctx, strings.TrimSpace(question), passages)
	if err != nil {
		return nil, err
	}

	if passages == nil {
		passages = []domain.Passage{}
	}
	return &domain.Answer{Answer: answer, References: passages}, nil
}

// Search returns the ranked passages for the question without invoking the
// generative model. k <= 0 uses the service default.
func (s *QueryService) Search(ctx context.Context, question string, k int) ([]domain.Passage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrMissingQuestion
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	qvec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	records, err := s.store.ScanAll(ctx, s.scanCeiling)
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	logger.Debug("Scanned %d records", len(records))

	ranked := s.retriever.RetrieveK(qvec, records, k)
	logger.Info("Retrieved %d passages", len(ranked))

	passages := make([]domain.Passage, len(ranked))
	for i, rc := range ranked {
		passages[i] = domain.Passage{
			Text:      rc.Chunk.Content,
			FileName:  rc.Chunk.FileName(),
			SourceKey: rc.Chunk.SourceKey,
			PageStart: rc.Chunk.PageStart,
			Score:     rc.Score,
		}
	}
	return passages, nil
}
