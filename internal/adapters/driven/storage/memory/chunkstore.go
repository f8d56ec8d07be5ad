// Package memory provides in-memory storage adapters for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

type chunkKey struct {
	docID string
	seq   int
}

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[chunkKey]domain.StoredChunk
	order  []chunkKey
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{chunks: make(map[chunkKey]domain.StoredChunk)}
}

// PutChunk upserts one chunk record.
func (s *ChunkStore) PutChunk(_ context.Context, chunk domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := chunkKey{docID: chunk.DocumentID, seq: chunk.Seq}
	if _, exists := s.chunks[key]; !exists {
		s.order = append(s.order, key)
	}
	s.chunks[key] = domain.StoredChunk{
		DocumentID: chunk.DocumentID,
		Seq:        chunk.Seq,
		Content:    chunk.Content,
		Embedding:  marshalVector(chunk.Embedding),
		SourceKey:  chunk.SourceKey,
		Ext:        chunk.Ext,
		PageStart:  chunk.PageStart,
		Generation: chunk.Generation,
	}
	return nil
}

// PutRaw stores a pre-serialized record. Used by tests to plant malformed
// embeddings.
func (s *ChunkStore) PutRaw(rec domain.StoredChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := chunkKey{docID: rec.DocumentID, seq: rec.Seq}
	if _, exists := s.chunks[key]; !exists {
		s.order = append(s.order, key)
	}
	s.chunks[key] = rec
}

// DeleteDocument removes every chunk stored under the document identity.
func (s *ChunkStore) DeleteDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	for _, key := range s.order {
		if key.docID == documentID {
			delete(s.chunks, key)
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
	return nil
}

// ScanAll returns stored records in insertion order up to the ceiling.
func (s *ChunkStore) ScanAll(_ context.Context, ceiling int) ([]domain.StoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ceiling <= 0 {
		ceiling = driven.DefaultScanCeiling
	}

	records := make([]domain.StoredChunk, 0, len(s.order))
	for _, key := range s.order {
		if len(records) >= ceiling {
			break
		}
		records = append(records, s.chunks[key])
	}
	return records, nil
}

// Close releases resources.
func (s *ChunkStore) Close() error {
	return nil
}
