package mocks

import (
	"context"
	"fmt"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// MockDocumentLoader is a mock implementation of DocumentLoader for testing
type MockDocumentLoader struct {
	pages    []string
	failNext bool

	// Calls counts Load invocations
	Calls int
}

// NewMockDocumentLoader creates a loader that returns the given pages
func NewMockDocumentLoader(pages ...string) *MockDocumentLoader {
	return &MockDocumentLoader{pages: pages}
}

func (m *MockDocumentLoader) Load(ctx context.Context, data []byte) ([]string, error) {
	m.Calls++
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("%w: mock parse failure", domain.ErrParse)
	}
	return m.pages, nil
}

func (m *MockDocumentLoader) SupportedTypes() []string {
	return []string{"application/pdf"}
}

func (m *MockDocumentLoader) Priority() int {
	return 50
}

// Helper methods for testing

func (m *MockDocumentLoader) SetPages(pages []string) {
	m.pages = pages
}

func (m *MockDocumentLoader) SetFailNext(fail bool) {
	m.failNext = fail
}
