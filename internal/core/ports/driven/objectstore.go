package driven

import "context"

// ObjectStore fetches raw document bytes by storage key. Upload, presigned
// URL issuance and bucket lifecycle live outside this system; ingestion only
// needs the read path.
type ObjectStore interface {
	// Get returns the raw bytes stored under the key.
	Get(ctx context.Context, key string) ([]byte, error)
}
