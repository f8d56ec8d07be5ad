// Package chunker splits normalised document text into overlapping
// fixed-size windows, carrying the source page of each window's first
// character.
package chunker

import (
	"fmt"

	"github.com/askitty/askitty/internal/core/domain"
)

// DefaultMaxChars is the default window width in characters.
const DefaultMaxChars = 3500

// DefaultOverlap is the default number of characters shared between
// consecutive windows.
const DefaultOverlap = 200

// Chunker produces page-aware overlapping windows.
type Chunker struct {
	maxChars int
	overlap  int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChars sets the window width in characters.
func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		c.maxChars = n
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		c.overlap = n
	}
}

// New creates a chunker. Configurations where the step would not advance
// (overlap >= maxChars, or non-positive width) are rejected.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		maxChars: DefaultMaxChars,
		overlap:  DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.maxChars <= 0 {
		return nil, fmt.Errorf("%w: max chars must be positive, got %d", domain.ErrInvalidInput, c.maxChars)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d", domain.ErrInvalidInput, c.overlap)
	}
	if c.overlap >= c.maxChars {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than max chars %d", domain.ErrInvalidInput, c.overlap, c.maxChars)
	}

	return c, nil
}

// MaxChars returns the configured window width.
func (c *Chunker) MaxChars() int { return c.maxChars }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Window is one emitted chunk window.
type Window struct {
	// Text is the window content.
	Text string

	// PageStart is the page in effect at the window's first character.
	PageStart int
}

// Chunk slides a window of maxChars across fullText with step
// maxChars-overlap. Spans must be sorted ascending by start offset. Empty
// text yields no windows; text shorter than the window yields exactly one.
func (c *Chunker) Chunk(fullText string, spans []domain.PageSpan) []Window {
	n := len(fullText)
	if n == 0 {
		return nil
	}

	step := c.maxChars - c.overlap
	windows := make([]Window, 0, n/step+1)

	for i := 0; i < n; i += step {
		j := i + c.maxChars
		if j > n {
			j = n
		}
		windows = append(windows, Window{
			Text:      fullText[i:j],
			PageStart: domain.PageForOffset(spans, i),
		})
	}

	return windows
}
