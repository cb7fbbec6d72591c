package mocks

import (
	"context"
	"sync"
)

// MockEmbeddingCache is an in-memory mock implementation of EmbeddingCache
type MockEmbeddingCache struct {
	mu      sync.Mutex
	vectors map[string][]float32

	// Hits counts cache hits
	Hits int
	// Misses counts cache misses
	Misses int
	// Sets counts Set invocations
	Sets int
}

// NewMockEmbeddingCache creates a new MockEmbeddingCache
func NewMockEmbeddingCache() *MockEmbeddingCache {
	return &MockEmbeddingCache{
		vectors: make(map[string][]float32),
	}
}

func (m *MockEmbeddingCache) Get(ctx context.Context, model, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vec, ok := m.vectors[model+"\x00"+text]
	if !ok {
		m.Misses++
		return nil, nil
	}
	m.Hits++
	return vec, nil
}

func (m *MockEmbeddingCache) Set(ctx context.Context, model, text string, vector []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.vectors[model+"\x00"+text] = vector
	return nil
}

func (m *MockEmbeddingCache) Close() error {
	return nil
}
