// Package plaintext extracts text from plain-text style documents.
package plaintext

import (
	"context"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text, markdown and log files. These are flow
// formats with no page concept, so the result carries a single {0, 1} span.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md", ".log"}
}

// Extract decodes the bytes as UTF-8, dropping invalid sequences, and
// normalises the result.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, []domain.PageSpan, error) {
	content := strings.ToValidUTF8(string(data), "")
	return extractors.CleanText(content), []domain.PageSpan{{Start: 0, Page: 1}}, nil
}
