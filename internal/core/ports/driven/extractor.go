package driven

import (
	"context"

	"github.com/askitty/askitty/internal/core/domain"
)

// Extractor converts raw document bytes into normalised text with a page map.
// Each extractor handles specific file extensions.
type Extractor interface {
	// Extensions returns the lower-cased extensions this extractor
	// handles, including the dot (".pdf").
	Extensions() []string

	// Extract returns the normalised full text and the page spans mapping
	// character offsets to source pages. Formats without a page concept
	// return a single span {0, 1}.
	Extract(ctx context.Context, data []byte) (string, []domain.PageSpan, error)
}

// ExtractorRegistry dispatches extraction by file extension.
type ExtractorRegistry interface {
	// Extract routes to the extractor for the given extension. Unknown
	// extensions yield empty text with a single {0, 1} span and no error;
	// callers treat empty text as nothing to ingest.
	Extract(ctx context.Context, ext string, data []byte) (string, []domain.PageSpan, error)
}
