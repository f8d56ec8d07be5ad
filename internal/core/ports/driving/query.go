package driving

import (
	"context"

	"github.com/askitty/askitty/internal/core/domain"
)

// QueryService answers questions grounded on the ingested corpus.
type QueryService interface {
	// Ask embeds the question, ranks the corpus by similarity and
	// synthesizes a grounded answer with citations.
	Ask(ctx context.Context, question string) (*domain.Answer, error)

	// Search returns the ranked passages for a question without
	// invoking the generative model.
	Search(ctx context.Context, question string, k int) ([]domain.Passage, error)
}
