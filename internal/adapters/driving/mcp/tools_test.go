package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driving"
)

func TestNewServer_RequiresQueryService(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingQueryService)
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with references", func(t *testing.T) {
		mockQuery := &mockQueryService{
			answer: &domain.Answer{
				Answer: "The limit is 10MB [1]",
				References: []domain.Passage{
					{Text: "uploads are capped at 10MB", FileName: "limits.pdf", SourceKey: "uploads/limits.pdf", PageStart: 2},
				},
			},
		}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "what is the limit?"})

		require.NoError(t, err)
		assert.Equal(t, "The limit is 10MB [1]", output.Answer)
		require.Len(t, output.References, 1)
		assert.Equal(t, "uploads are capped at 10MB", output.References[0].Text)
		assert.Equal(t, "limits.pdf", output.References[0].FileName)
		assert.Equal(t, "uploads/limits.pdf", output.References[0].SourceKey)
		assert.Equal(t, 2, output.References[0].PageStart)
		assert.Equal(t, []string{"what is the limit?"}, mockQuery.questions)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("ask failed")}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ask failed")
	})
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns passages", func(t *testing.T) {
		mockQuery := &mockQueryService{
			passages: []domain.Passage{
				{Text: "first", FileName: "a.txt", SourceKey: "a.txt", PageStart: 1},
				{Text: "second", FileName: "b.txt", SourceKey: "b.txt", PageStart: 1},
			},
		}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Question: "q", Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Passages, 2)
		assert.Equal(t, "first", output.Passages[0].Text)
		assert.Equal(t, 2, mockQuery.lastK)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("search failed")}

		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Question: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ingest result", func(t *testing.T) {
		mockIngest := &mockIngestService{
			result: &driving.IngestResult{
				Key:        "uploads/doc.pdf",
				DocumentID: "uploads_doc.pdf",
				Chunks:     4,
				Pages:      2,
			},
		}

		server, err := NewServer(&Ports{Query: &mockQueryService{}, Ingest: mockIngest})
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{Key: "uploads/doc.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "uploads_doc.pdf", output.DocumentID)
		assert.Equal(t, 4, output.Chunks)
		assert.Equal(t, 2, output.Pages)
		assert.False(t, output.Skipped)
		assert.Equal(t, []string{"uploads/doc.pdf"}, mockIngest.keys)
	})

	t.Run("returns error on ingest failure", func(t *testing.T) {
		mockIngest := &mockIngestService{err: errors.New("ingest failed")}

		server, err := NewServer(&Ports{Query: &mockQueryService{}, Ingest: mockIngest})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Key: "k"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ingest failed")
	})
}
