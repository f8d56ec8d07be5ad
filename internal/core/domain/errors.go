package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingQuestion indicates a query request without a question.
	ErrMissingQuestion = errors.New("missing question")

	// ErrUnsupportedType indicates an extension no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates both paged and flat extraction failed.
	// Ingestion of the affected document is abandoned.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
