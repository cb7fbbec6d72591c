package driven

import (
	"context"
)

// EmbeddingCache caches computed embeddings keyed by model and text.
// Strictly best-effort: callers must treat every failure as a miss and
// never fail an operation because the cache is down.
type EmbeddingCache interface {
	// Get returns the cached vector for (model, text), or nil on miss.
	Get(ctx context.Context, model, text string) ([]float32, error)

	// Set stores a vector for (model, text)
	Set(ctx context.Context, model, text string, vector []float32) error

	// Close releases cache resources
	Close() error
}
