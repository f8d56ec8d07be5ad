package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"flat key", "report.pdf", "report.pdf"},
		{"nested key", "uploads/2025/report.pdf", "uploads_2025_report.pdf"},
		{"trailing separator", "uploads/", "uploads_"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DocumentID(tt.key))
		})
	}
}

func TestPageForOffset(t *testing.T) {
	spans := []PageSpan{{Start: 0, Page: 1}, {Start: 4, Page: 2}, {Start: 5, Page: 3}}

	tests := []struct {
		name     string
		spans    []PageSpan
		offset   int
		expected int
	}{
		{"no spans defaults to page 1", nil, 10, 1},
		{"offset before first span defaults to page 1", []PageSpan{{Start: 5, Page: 3}}, 2, 1},
		{"exact span start", spans, 4, 2},
		{"between spans", spans, 3, 1},
		{"after last span", spans, 100, 3},
		{"offset zero", spans, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageForOffset(tt.spans, tt.offset))
		})
	}
}

// Property: for random sorted span layouts, the page at any offset is the
// page of the last span whose start does not exceed the offset.
func TestPageForOffset_RandomLayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		var spans []PageSpan
		start := 0
		for p := 1; p <= 1+rng.Intn(8); p++ {
			spans = append(spans, PageSpan{Start: start, Page: p})
			start += 1 + rng.Intn(50)
		}

		for i := 0; i < 20; i++ {
			offset := rng.Intn(start + 10)

			want := 1
			for _, s := range spans {
				if s.Start <= offset {
					want = s.Page
				}
			}
			assert.Equal(t, want, PageForOffset(spans, offset))
		}
	}
}

func TestStoredChunk_FileName(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"nested", "uploads/docs/manual.pdf", "manual.pdf"},
		{"flat", "manual.pdf", "manual.pdf"},
		{"trailing slash", "uploads/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := StoredChunk{SourceKey: tt.key}
			assert.Equal(t, tt.expected, c.FileName())
		})
	}
}
