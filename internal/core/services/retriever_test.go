package services

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askitty/askitty/internal/core/domain"
)

func storedChunk(id string, vec []float32) domain.StoredChunk {
	data, _ := json.Marshal(vec)
	return domain.StoredChunk{DocumentID: id, Content: id, Embedding: data}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical unit vectors", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector yields zero, not NaN", []float32{0, 0}, []float32{1, 0}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestCosineSimilarity_SymmetricAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 100; trial++ {
		dim := 1 + rng.Intn(16)
		a := make([]float32, dim)
		b := make([]float32, dim)
		for i := range a {
			a[i] = rng.Float32()*2 - 1
			b[i] = rng.Float32()*2 - 1
		}

		ab := CosineSimilarity(a, b)
		ba := CosineSimilarity(b, a)
		assert.InDelta(t, ab, ba, 1e-9)
		assert.LessOrEqual(t, ab, 1+1e-6)
		assert.GreaterOrEqual(t, ab, -1-1e-6)

		// Self-similarity of a non-zero vector is ~1
		var norm float64
		for _, x := range a {
			norm += float64(x) * float64(x)
		}
		if norm > 1e-6 {
			assert.InDelta(t, 1, CosineSimilarity(a, a), 1e-6)
		}
	}
}

func TestRetrieve_RanksDescending(t *testing.T) {
	r := NewRetriever(8)
	records := []domain.StoredChunk{
		storedChunk("far", []float32{0, 1}),
		storedChunk("near", []float32{1, 0}),
		storedChunk("mid", []float32{1, 1}),
	}

	ranked := r.Retrieve([]float32{1, 0}, records)
	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].Chunk.DocumentID)
	assert.Equal(t, "mid", ranked[1].Chunk.DocumentID)
	assert.Equal(t, "far", ranked[2].Chunk.DocumentID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
	assert.Greater(t, ranked[1].Score, ranked[2].Score)
}

func TestRetrieve_TopKTruncates(t *testing.T) {
	r := NewRetriever(2)
	var records []domain.StoredChunk
	for i := 0; i < 10; i++ {
		records = append(records, storedChunk("c", []float32{1, float32(i)}))
	}

	assert.Len(t, r.Retrieve([]float32{1, 0}, records), 2)
}

func TestRetrieve_SmallCorpusReturnsAll(t *testing.T) {
	r := NewRetriever(8)
	records := []domain.StoredChunk{
		storedChunk("a", []float32{1, 0}),
		storedChunk("b", []float32{0, 1}),
	}

	ranked := r.Retrieve([]float32{1, 0}, records)
	assert.Len(t, ranked, 2)
}

func TestRetrieve_SkipsMalformedRecords(t *testing.T) {
	r := NewRetriever(8)
	records := []domain.StoredChunk{
		{DocumentID: "bad", Embedding: []byte("not json")},
		storedChunk("good", []float32{1, 0}),
		{DocumentID: "worse", Embedding: nil},
	}

	ranked := r.Retrieve([]float32{1, 0}, records)
	require.Len(t, ranked, 1)
	assert.Equal(t, "good", ranked[0].Chunk.DocumentID)
}

func TestRetrieve_AllMalformedYieldsEmpty(t *testing.T) {
	r := NewRetriever(8)
	records := []domain.StoredChunk{
		{DocumentID: "bad", Embedding: []byte("{")},
		{DocumentID: "bad2", Embedding: []byte(`"strings are not vectors"`)},
	}

	assert.Empty(t, r.Retrieve([]float32{1, 0}, records))
}

func TestRetrieve_TiesKeepScanOrder(t *testing.T) {
	r := NewRetriever(8)
	records := []domain.StoredChunk{
		storedChunk("first", []float32{2, 0}),
		storedChunk("second", []float32{3, 0}),
		storedChunk("third", []float32{4, 0}),
	}

	// All score 1 against the query; stable sort keeps encounter order.
	ranked := r.Retrieve([]float32{1, 0}, records)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Chunk.DocumentID)
	assert.Equal(t, "second", ranked[1].Chunk.DocumentID)
	assert.Equal(t, "third", ranked[2].Chunk.DocumentID)
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	r := NewRetriever(8)
	assert.Empty(t, r.Retrieve([]float32{1, 0}, nil))
}
