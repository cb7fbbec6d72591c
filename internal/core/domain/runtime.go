package domain

import "sync"

// RuntimeConfig tracks which external AI capabilities are available.
// Flags are set when services are wired at startup and can be updated
// if services are swapped at runtime. Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	IndexBackend string // "pinecone" or "memory"

	// Dynamic capability flags (updated when AI services change)
	embeddingAvailable bool
	synthesisAvailable bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(indexBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		IndexBackend: indexBackend,
	}
}

// EmbeddingAvailable returns whether the embedding service is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// SynthesisAvailable returns whether the answer synthesizer is available
func (c *RuntimeConfig) SynthesisAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synthesisAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetSynthesisAvailable updates the synthesis availability flag
func (c *RuntimeConfig) SetSynthesisAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synthesisAvailable = available
}

// CanAnswerGrounded returns true if the retrieval-and-synthesis path
// is fully wired. When false the chatbot runs on the fallback
// knowledge base only.
func (c *RuntimeConfig) CanAnswerGrounded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable && c.synthesisAvailable
}

// CanIngest returns true if document ingestion is possible
func (c *RuntimeConfig) CanIngest() bool {
	return c.EmbeddingAvailable()
}
