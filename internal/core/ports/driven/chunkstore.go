package driven

import (
	"context"

	"github.com/askitty/askitty/internal/core/domain"
)

// DefaultScanCeiling caps how many records a full-corpus scan returns.
// Retrieval is an exact brute-force comparison over every record, so the
// scan size has to stay bounded.
const DefaultScanCeiling = 5000

// ChunkStore is a flat keyed record store for chunks. Records are keyed by
// (document identity, sequence index); writing the same key overwrites in
// place.
type ChunkStore interface {
	// PutChunk upserts one chunk record.
	PutChunk(ctx context.Context, chunk domain.Chunk) error

	// DeleteDocument removes every chunk stored under the document
	// identity. Used to keep re-ingestion idempotent.
	DeleteDocument(ctx context.Context, documentID string) error

	// ScanAll returns stored chunk records up to the ceiling. Delivery
	// may be internally paginated; callers must not assume a single page.
	// Embeddings come back serialized so malformed records can be
	// skipped during ranking instead of failing the scan.
	ScanAll(ctx context.Context, ceiling int) ([]domain.StoredChunk, error)

	// Close releases resources.
	Close() error
}
