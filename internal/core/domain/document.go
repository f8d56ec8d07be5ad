package domain

import "strings"

// Document identifies one ingested object. Identity is derived from the
// object-storage key; re-ingesting the same key replaces the chunk set.
type Document struct {
	// ID is the document identity: the source key with path separators
	// replaced by underscores.
	ID string

	// SourceKey is the original object-storage key.
	SourceKey string

	// Ext is the lower-cased file extension including the dot (".pdf").
	Ext string

	// RawSize is the raw byte length of the fetched object.
	RawSize int
}

// DocumentID derives the document identity from an object-storage key.
func DocumentID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}

// PageSpan maps a character offset in normalised text to a source page.
// The page is in effect for all offsets >= Start until the next span's Start.
type PageSpan struct {
	// Start is the character offset where the page begins.
	Start int

	// Page is the 1-based page number.
	Page int
}

// PageForOffset returns the page number in effect at the given offset.
// Spans must be sorted ascending by Start. Returns 1 when no span qualifies
// or the format has no page concept.
func PageForOffset(spans []PageSpan, offset int) int {
	current := 1
	for _, s := range spans {
		if offset >= s.Start {
			current = s.Page
		} else {
			break
		}
	}
	return current
}

// Chunk is the unit of embedding and retrieval: a bounded window of a
// document's normalised text with its originating page.
type Chunk struct {
	// DocumentID links to the owning Document.
	DocumentID string

	// Seq is the dense 0-based emission order within the document.
	Seq int

	// Content is the window text. The stored copy may be truncated; the
	// embedding is always computed over the full window.
	Content string

	// Embedding is the vector representation, fixed length per model.
	Embedding []float32

	// PageStart is the page in effect at the chunk's first character.
	PageStart int

	// SourceKey is the original object-storage key.
	SourceKey string

	// Ext is the document's file extension.
	Ext string

	// Generation tags the ingestion run that produced this chunk.
	Generation string
}

// StoredChunk is a chunk record as read back from the store. The embedding
// stays serialized so a scan can skip unparseable records instead of failing.
type StoredChunk struct {
	DocumentID string
	Seq        int
	Content    string
	Embedding  []byte
	SourceKey  string
	Ext        string
	PageStart  int
	Generation string
}

// FileName returns the display name: the last path segment of the source key.
func (c StoredChunk) FileName() string {
	if i := strings.LastIndex(c.SourceKey, "/"); i >= 0 {
		return c.SourceKey[i+1:]
	}
	return c.SourceKey
}
