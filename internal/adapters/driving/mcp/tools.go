package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string            `json:"answer"`
	References []ReferenceOutput `json:"references"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Question string `json:"question" jsonschema:"the question to find relevant passages for"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 8)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Passages []ReferenceOutput `json:"passages"`
	Count    int               `json:"count"`
}

// ReferenceOutput is one cited passage.
type ReferenceOutput struct {
	Text      string `json:"text"`
	FileName  string `json:"file_name"`
	SourceKey string `json:"source_key"`
	PageStart int    `json:"page_start"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Key string `json:"key" jsonschema:"the storage key of the document to ingest"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
	Pages      int    `json:"pages"`
	Skipped    bool   `json:"skipped"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed documents, with citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find the passages most relevant to a question without generating an answer",
	}, s.handleSearch)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Ingest a stored document into the searchable corpus",
		}, s.handleIngest)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:     answer.Answer,
		References: make([]ReferenceOutput, len(answer.References)),
	}
	for i, ref := range answer.References {
		output.References[i] = ReferenceOutput{
			Text:      ref.Text,
			FileName:  ref.FileName,
			SourceKey: ref.SourceKey,
			PageStart: ref.PageStart,
		}
	}

	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	passages, err := s.ports.Query.Search(ctx, input.Question, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Passages: make([]ReferenceOutput, len(passages)),
		Count:    len(passages),
	}
	for i, p := range passages {
		output.Passages[i] = ReferenceOutput{
			Text:      p.Text,
			FileName:  p.FileName,
			SourceKey: p.SourceKey,
			PageStart: p.PageStart,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	result, err := s.ports.Ingest.IngestObject(ctx, input.Key)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		DocumentID: result.DocumentID,
		Chunks:     result.Chunks,
		Pages:      result.Pages,
		Skipped:    result.Skipped,
	}, nil
}
