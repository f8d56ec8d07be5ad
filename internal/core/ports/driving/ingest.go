package driving

import "context"

// IngestService turns document-arrival notifications into stored,
// embedded chunks.
type IngestService interface {
	// IngestObject processes one storage key: fetch, extract, chunk,
	// embed, store. Empty extracted text is a skip, not an error.
	IngestObject(ctx context.Context, key string) (*IngestResult, error)

	// IngestBatch processes several keys sequentially. A failure in one
	// document is contained to that document; the batch continues.
	IngestBatch(ctx context.Context, keys []string) (*BatchResult, error)
}

// IngestResult reports what one document ingestion did.
type IngestResult struct {
	// Key is the processed object-storage key.
	Key string

	// DocumentID is the derived document identity.
	DocumentID string

	// Chunks is the number of chunk records written.
	Chunks int

	// Pages is the number of page spans the extractor reported.
	Pages int

	// Skipped is true when the document produced no text to ingest.
	Skipped bool
}

// BatchResult aggregates a batch of ingestions.
type BatchResult struct {
	// Results holds the per-document outcomes, in input order,
	// for documents that did not fail.
	Results []IngestResult

	// Errors maps failed keys to their errors.
	Errors map[string]error
}
