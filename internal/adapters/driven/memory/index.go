package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Ensure Index implements VectorIndex
var _ driven.VectorIndex = (*Index)(nil)

type namespace struct {
	dimension int
	metric    string
	entries   map[string]*domain.IndexEntry
}

// Index is an in-memory vector index using brute-force cosine
// similarity. Intended for local development and tests; the corpus is
// lost on process exit.
type Index struct {
	mu         sync.RWMutex
	namespaces map[string]*namespace
}

// New creates a new in-memory vector index.
func New() *Index {
	return &Index{
		namespaces: make(map[string]*namespace),
	}
}

// EnsureNamespace creates the namespace if it does not exist.
// Re-creating with a different dimension is a provisioning error.
func (m *Index) EnsureNamespace(_ context.Context, name string, dimension int, metric string) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrIndexProvisioning, dimension)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.namespaces[name]; ok {
		if existing.dimension != dimension {
			return fmt.Errorf("%w: namespace %s has dimension %d, expected %d",
				domain.ErrIndexProvisioning, name, existing.dimension, dimension)
		}
		return nil
	}

	m.namespaces[name] = &namespace{
		dimension: dimension,
		metric:    metric,
		entries:   make(map[string]*domain.IndexEntry),
	}
	return nil
}

// Upsert adds or replaces entries by ID.
func (m *Index) Upsert(_ context.Context, name string, entries []*domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.namespaces[name]
	if !ok {
		return fmt.Errorf("%w: namespace %s does not exist", domain.ErrIndexQuery, name)
	}

	for _, e := range entries {
		if len(e.Vector) != ns.dimension {
			return fmt.Errorf("%w: entry %s has %d dimensions, namespace expects %d",
				domain.ErrDimensionMismatch, e.ID, len(e.Vector), ns.dimension)
		}
	}
	for _, e := range entries {
		ns.entries[e.ID] = e
	}
	return nil
}

// Search scans the namespace and returns the k nearest entries by
// cosine similarity. An unknown namespace yields an empty result set.
func (m *Index) Search(_ context.Context, name string, vector []float32, k int) ([]*domain.RankedChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns, ok := m.namespaces[name]
	if !ok {
		return nil, nil
	}

	results := make([]*domain.RankedChunk, 0, len(ns.entries))
	for _, e := range ns.entries {
		results = append(results, &domain.RankedChunk{
			ID:       e.ID,
			Content:  e.Content,
			Score:    cosineSimilarity(vector, e.Vector),
			Metadata: e.Metadata,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// HealthCheck always succeeds for the in-memory index.
func (m *Index) HealthCheck(_ context.Context) error {
	return nil
}

// Count returns the number of entries in a namespace.
func (m *Index) Count(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ns, ok := m.namespaces[name]
	if !ok {
		return 0
	}
	return len(ns.entries)
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
