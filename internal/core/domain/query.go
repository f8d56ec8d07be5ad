package domain

// Passage is a retrieved chunk shaped for display and citation.
type Passage struct {
	// Text is the stored (possibly truncated) chunk text.
	Text string `json:"text"`

	// FileName is the last path segment of the source key.
	FileName string `json:"fileName"`

	// SourceKey is the object-storage key of the originating document.
	SourceKey string `json:"s3Key"`

	// PageStart is the page the passage starts on.
	PageStart int `json:"pageStart"`

	// Score is the cosine similarity against the question vector.
	Score float64 `json:"-"`
}

// Answer is the result of one grounded question/answer round trip.
type Answer struct {
	// Answer is the generated text, or the fixed fallback when no
	// passages were retrieved.
	Answer string `json:"answer"`

	// References are the passages the answer is grounded on, ranked
	// descending by similarity.
	References []Passage `json:"references"`
}
