// Package ratelimit wraps an embedding service with a request rate limiter,
// keeping bulk ingestion from overwhelming a local model server or burning
// through a hosted API quota.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/askitty/askitty/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultRequestsPerSecond is the default sustained request rate.
const DefaultRequestsPerSecond = 10

// EmbeddingService delegates to an inner embedding service, blocking each
// call until the limiter grants a token.
type EmbeddingService struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// Wrap decorates inner with a limiter allowing rps sustained requests per
// second and a burst of the same size. Non-positive rps uses the default.
func Wrap(inner driven.EmbeddingService, rps float64) *EmbeddingService {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &EmbeddingService{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Embed waits for the limiter, then delegates. A cancelled context returns
// the context error without calling the inner service.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit: %w", err)
	}
	return s.inner.Embed(ctx, text)
}

// Dimensions returns the inner service's vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Close closes the inner service.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}
