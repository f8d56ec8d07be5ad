package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/askitty/askitty/internal/chunker"
	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/core/ports/driving"
	"github.com/askitty/askitty/internal/logger"
)

// MaxStoredChars caps the persisted chunk text. The embedding is computed on
// the full window; only the stored snippet is truncated.
const MaxStoredChars = 3500

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the ingestion pipeline for each document arrival:
// fetch, extract, chunk, embed, store. Documents are processed sequentially
// and independently; a failure in one never touches another.
type IngestService struct {
	objects        driven.ObjectStore
	extractors     driven.ExtractorRegistry
	chunker        *chunker.Chunker
	embedder       driven.EmbeddingService
	store          driven.ChunkStore
	maxStoredChars int
}

// NewIngestService creates an ingest service over the given collaborators.
func NewIngestService(
	objects driven.ObjectStore,
	extractors driven.ExtractorRegistry,
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.ChunkStore,
) *IngestService {
	return &IngestService{
		objects:        objects,
		extractors:     extractors,
		chunker:        ch,
		embedder:       embedder,
		store:          store,
		maxStoredChars: MaxStoredChars,
	}
}

// IngestObject processes one storage key end to end. Empty extracted text
// (including unsupported extensions) is a skip, not an error. An embedding
// or store failure aborts the document's remaining chunks; chunks already
// written stay written.
func (s *IngestService) IngestObject(ctx context.Context, key string) (*driving.IngestResult, error) {
	logger.Section("Ingest " + key)

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	data, err := s.objects.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch object %s: %w", key, err)
	}

	ext := strings.ToLower(filepath.Ext(key))
	text, spans, err := s.extractors.Extract(ctx, ext, data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", key, err)
	}

	result := &driving.IngestResult{
		Key:        key,
		DocumentID: domain.DocumentID(key),
		Pages:      len(spans),
	}

	if strings.TrimSpace(text) == "" {
		logger.Info("No text extracted from %s, skipping", key)
		result.Skipped = true
		return result, nil
	}

	windows := s.chunker.Chunk(text, spans)
	logger.Debug("Document %s: %d chars, %d pages, %d chunks", result.DocumentID, len(text), len(spans), len(windows))

	// Re-ingestion is full replacement: clear the old chunk set first so a
	// shrinking document leaves no stale records behind.
	if err := s.store.DeleteDocument(ctx, result.DocumentID); err != nil {
		return nil, fmt.Errorf("clear previous chunks for %s: %w", result.DocumentID, err)
	}

	generation := uuid.New().String()
	for i, w := range windows {
		// Embed the full window before truncating the stored copy.
		vec, err := s.embedder.Embed(ctx, w.Text)
		if err != nil {
			return result, fmt.Errorf("embed chunk %d of %s: %w", i, key, err)
		}

		content := w.Text
		if len(content) > s.maxStoredChars {
			content = content[:s.maxStoredChars]
		}

		chunk := domain.Chunk{
			DocumentID: result.DocumentID,
			Seq:        i,
			Content:    content,
			Embedding:  vec,
			PageStart:  w.PageStart,
			SourceKey:  key,
			Ext:        ext,
			Generation: generation,
		}
		if err := s.store.PutChunk(ctx, chunk); err != nil {
			return result, fmt.Errorf("store chunk %d of %s: %w", i, key, err)
		}
		result.Chunks++
	}

	logger.Info("Ingested %s: %d chunks", key, result.Chunks)
	return result, nil
}

// IngestBatch processes keys sequentially. Per-document failures are
// collected; the batch always runs to the end.
func (s *IngestService) IngestBatch(ctx context.Context, keys []string) (*driving.BatchResult, error) {
	batch := &driving.BatchResult{Errors: make(map[string]error)}

	for _, key := range keys {
		res, err := s.IngestObject(ctx, key)
		if err != nil {
			logger.Warn("Ingestion of %s failed: %v", key, err)
			batch.Errors[key] = err
			continue
		}
		batch.Results = append(batch.Results, *res)
	}

	return batch, nil
}
