package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmbedder counts calls and returns a fixed vector.
type mockEmbedder struct {
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	return []float32{1, 2}, nil
}

func (m *mockEmbedder) Dimensions() int   { return 2 }
func (m *mockEmbedder) ModelName() string { return "inner-model" }
func (m *mockEmbedder) Close() error      { return nil }

func TestWrap_Delegates(t *testing.T) {
	inner := &mockEmbedder{}
	svc := Wrap(inner, 100)

	vec, err := svc.Embed(context.Background(), "text")
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2}, vec)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 2, svc.Dimensions())
	assert.Equal(t, "inner-model", svc.ModelName())
	assert.NoError(t, svc.Close())
}

func TestWrap_DefaultRate(t *testing.T) {
	svc := Wrap(&mockEmbedder{}, 0)
	assert.Equal(t, float64(DefaultRequestsPerSecond), float64(svc.limiter.Limit()))
}

func TestEmbed_ThrottlesBeyondBurst(t *testing.T) {
	inner := &mockEmbedder{}
	// Burst of 2, then one token every 500ms.
	svc := Wrap(inner, 2)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := svc.Embed(context.Background(), "text")
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	assert.Equal(t, 3, inner.calls)
	assert.GreaterOrEqual(t, elapsed, 400*time.Millisecond)
}

func TestEmbed_CancelledContextSkipsInner(t *testing.T) {
	inner := &mockEmbedder{}
	svc := Wrap(inner, 1)

	// Drain the burst so the next call must wait.
	_, err := svc.Embed(context.Background(), "text")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Embed(ctx, "text")
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
