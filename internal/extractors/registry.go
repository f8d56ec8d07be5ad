package extractors

import (
	"context"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction by lower-cased file extension.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. Later extractors
// win when extensions collide.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for all its extensions.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Extract routes to the extractor registered for ext. Unknown extensions
// return empty text with a single {0, 1} span and no error; callers treat
// empty text as nothing to ingest.
func (r *Registry) Extract(ctx context.Context, ext string, data []byte) (string, []domain.PageSpan, error) {
	ext = strings.ToLower(ext)
	e, ok := r.byExt[ext]
	if !ok {
		logger.Debug("No extractor for extension %q, skipping", ext)
		return "", []domain.PageSpan{{Start: 0, Page: 1}}, nil
	}
	return e.Extract(ctx, data)
}
