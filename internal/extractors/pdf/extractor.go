// Package pdf extracts text from PDF documents using the pdftotext tool.
// Pages arrive separated by form feeds, which preserves the page boundaries
// needed to map chunk offsets back to page numbers.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
	"github.com/askitty/askitty/internal/extractors"
	"github.com/askitty/askitty/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// CommandRunner executes an external command with the given stdin.
// Extracted as an interface so tests can substitute canned output.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(errOut.String()))
	}
	return out.Bytes(), nil
}

// Extractor handles PDF documents.
type Extractor struct {
	runner CommandRunner
}

// New creates a PDF extractor backed by the pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract converts PDF bytes to normalised text with page spans.
// Per-page extraction is attempted first; when it fails or yields no
// non-whitespace content, a flat whole-document pass runs instead and the
// result carries a single {0, 1} span. Only when both passes fail does the
// error propagate and ingestion of the document is abandoned.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, []domain.PageSpan, error) {
	full, spans, err := e.extractPages(ctx, data)
	if err == nil && strings.TrimSpace(full) != "" {
		return full, spans, nil
	}
	if err != nil {
		logger.Warn("Paged PDF extraction failed, falling back to flat: %v", err)
	}

	flat, flatErr := e.extractFlat(ctx, data)
	if flatErr != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, flatErr)
	}
	return flat, []domain.PageSpan{{Start: 0, Page: 1}}, nil
}

// extractPages runs pdftotext and rebuilds the page layout from the form
// feeds it emits between pages.
func (e *Extractor) extractPages(ctx context.Context, data []byte) (string, []domain.PageSpan, error) {
	out, err := e.runner.Run(ctx, data, "pdftotext", "-enc", "UTF-8", "-", "-")
	if err != nil {
		return "", nil, err
	}

	// pdftotext terminates every page with \f, including the last.
	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 1 && pages[n-1] == "" {
		pages = pages[:n-1]
	}

	parts := make([]string, 0, len(pages))
	spans := make([]domain.PageSpan, 0, len(pages))
	offset := 0
	for i, page := range pages {
		txt := extractors.CleanText(page)
		spans = append(spans, domain.PageSpan{Start: offset, Page: i + 1})
		parts = append(parts, txt)
		if txt == "" {
			// Placeholder keeps offsets advancing past empty pages so
			// page assignment never goes backward.
			offset++
		} else {
			offset += len(txt) + 1 // reserves the joining newline
		}
	}

	return strings.Join(parts, "\n"), spans, nil
}

// extractFlat returns whole-document text with no page structure.
func (e *Extractor) extractFlat(ctx context.Context, data []byte) (string, error) {
	out, err := e.runner.Run(ctx, data, "pdftotext", "-raw", "-enc", "UTF-8", "-", "-")
	if err != nil {
		return "", err
	}
	return extractors.CleanText(strings.ReplaceAll(string(out), "\f", "\n")), nil
}
