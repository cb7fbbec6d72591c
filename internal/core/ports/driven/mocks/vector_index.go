package mocks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

type mockNamespace struct {
	dimension int
	metric    string
	entries   map[string]*domain.IndexEntry
}

// MockVectorIndex is an in-memory mock implementation of VectorIndex
// for testing. Similarity is cosine.
type MockVectorIndex struct {
	mu         sync.RWMutex
	namespaces map[string]*mockNamespace

	// EnsureCalls counts EnsureNamespace invocations
	EnsureCalls int
	// CreateCalls counts namespaces actually created
	CreateCalls int
	// SearchCalls counts Search invocations
	SearchCalls int
	// UpsertBatches records the entry IDs of each Upsert call, in order
	UpsertBatches [][]string

	failEnsure bool
	failUpsert bool
	failSearch bool

	// canned results returned by Search when set
	searchResults []*domain.RankedChunk
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		namespaces: make(map[string]*mockNamespace),
	}
}

func (m *MockVectorIndex) EnsureNamespace(ctx context.Context, name string, dimension int, metric string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnsureCalls++
	if m.failEnsure {
		return fmt.Errorf("%w: mock ensure failure", domain.ErrIndexProvisioning)
	}

	if _, ok := m.namespaces[name]; ok {
		return nil
	}
	m.namespaces[name] = &mockNamespace{
		dimension: dimension,
		metric:    metric,
		entries:   make(map[string]*domain.IndexEntry),
	}
	m.CreateCalls++
	return nil
}

func (m *MockVectorIndex) Upsert(ctx context.Context, namespace string, entries []*domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failUpsert {
		return fmt.Errorf("%w: mock upsert failure", domain.ErrIndexQuery)
	}

	ns, ok := m.namespaces[namespace]
	if !ok {
		return fmt.Errorf("%w: namespace %s does not exist", domain.ErrIndexQuery, namespace)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ns.entries[e.ID] = e
		ids = append(ids, e.ID)
	}
	m.UpsertBatches = append(m.UpsertBatches, ids)
	return nil
}

func (m *MockVectorIndex) Search(ctx context.Context, namespace string, vector []float32, k int) ([]*domain.RankedChunk, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failSearch {
		return nil, fmt.Errorf("%w: mock search failure", domain.ErrIndexQuery)
	}

	if m.searchResults != nil {
		if k < len(m.searchResults) {
			return m.searchResults[:k], nil
		}
		return m.searchResults, nil
	}

	ns, ok := m.namespaces[namespace]
	if !ok {
		return nil, nil
	}

	var results []*domain.RankedChunk
	for _, e := range ns.entries {
		results = append(results, &domain.RankedChunk{
			ID:       e.ID,
			Content:  e.Content,
			Score:    cosine(vector, e.Vector),
			Metadata: e.Metadata,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}

// Helper methods for testing

func (m *MockVectorIndex) SetFailEnsure(fail bool) { m.failEnsure = fail }
func (m *MockVectorIndex) SetFailUpsert(fail bool) { m.failUpsert = fail }
func (m *MockVectorIndex) SetFailSearch(fail bool) { m.failSearch = fail }

// SetSearchResults makes Search return canned results regardless of
// stored entries.
func (m *MockVectorIndex) SetSearchResults(results []*domain.RankedChunk) {
	m.searchResults = results
}

// Count returns the number of entries in a namespace
func (m *MockVectorIndex) Count(namespace string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ns, ok := m.namespaces[namespace]
	if !ok {
		return 0
	}
	return len(ns.entries)
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
