package driven

import (
	"context"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// VectorIndex stores (vector, text, metadata) entries under named
// namespaces and supports k-nearest-neighbour similarity search.
type VectorIndex interface {
	// EnsureNamespace creates the namespace with a fixed dimension and
	// metric if it does not exist. Idempotent: implementations check
	// existence before creating.
	EnsureNamespace(ctx context.Context, name string, dimension int, metric string) error

	// Upsert adds or replaces entries in a namespace. There is no
	// uniqueness constraint on entry text; duplicates accumulate.
	Upsert(ctx context.Context, namespace string, entries []*domain.IndexEntry) error

	// Search returns up to k entries ordered by descending similarity.
	// An empty result set is valid and means "no context".
	Search(ctx context.Context, namespace string, vector []float32, k int) ([]*domain.RankedChunk, error)

	// HealthCheck verifies the index backend is reachable
	HealthCheck(ctx context.Context) error
}
