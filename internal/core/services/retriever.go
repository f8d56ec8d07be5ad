package services

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/logger"
)

// DefaultTopK is the default number of passages retrieved per query.
const DefaultTopK = 8

// cosineEpsilon guards against division by zero on degenerate vectors.
const cosineEpsilon = 1e-9

// RankedChunk is a stored chunk with its similarity against the query.
type RankedChunk struct {
	Chunk domain.StoredChunk
	Score float64
}

// Retriever ranks the full chunk corpus against a query vector. This is an
// exact brute-force comparison; no index structure is built or maintained.
type Retriever struct {
	k int
}

// NewRetriever creates a retriever returning the top k chunks per query.
// Non-positive k falls back to DefaultTopK.
func NewRetriever(k int) *Retriever {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Retriever{k: k}
}

// Retrieve scores every record by cosine similarity and returns the top k,
// descending. Records whose vector field does not parse are skipped, not
// fatal. Ties keep scan encounter order.
func (r *Retriever) Retrieve(queryVec []float32, records []domain.StoredChunk) []RankedChunk {
	return r.RetrieveK(queryVec, records, r.k)
}

// RetrieveK is Retrieve with an explicit k override.
func (r *Retriever) RetrieveK(queryVec []float32, records []domain.StoredChunk, k int) []RankedChunk {
	if k <= 0 {
		k = r.k
	}

	scored := make([]RankedChunk, 0, len(records))
	skipped := 0
	for _, rec := range records {
		vec, err := parseVector(rec.Embedding)
		if err != nil {
			skipped++
			continue
		}
		scored = append(scored, RankedChunk{
			Chunk: rec,
			Score: CosineSimilarity(queryVec, vec),
		})
	}
	if skipped > 0 {
		logger.Warn("Skipped %d records with unparseable embeddings", skipped)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// parseVector decodes a serialized embedding.
func parseVector(data []byte) ([]float32, error) {
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}

// CosineSimilarity computes normalized dot-product similarity. Dimension
// mismatches dot over the shorter vector; norms cover each full vector.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	var na, nb float64
	for _, x := range a {
		na += float64(x) * float64(x)
	}
	for _, y := range b {
		nb += float64(y) * float64(y)
	}

	return dot / ((math.Sqrt(na) + cosineEpsilon) * (math.Sqrt(nb) + cosineEpsilon))
}
