package mocks

import (
	"context"
	"errors"
)

// MockSynthesizerService is a mock implementation of SynthesizerService
// for testing
type MockSynthesizerService struct {
	response string
	failNext bool
	failAll  bool

	// LastQuery records the most recent query passed to Synthesize
	LastQuery string
	// LastContexts records the most recent context chunks
	LastContexts []string
	// Calls counts Synthesize invocations
	Calls int
}

// NewMockSynthesizerService creates a new MockSynthesizerService
func NewMockSynthesizerService() *MockSynthesizerService {
	return &MockSynthesizerService{
		response: "mock synthesized answer",
	}
}

func (m *MockSynthesizerService) Synthesize(ctx context.Context, query string, contexts []string) (string, error) {
	m.Calls++
	m.LastQuery = query
	m.LastContexts = contexts

	if m.failAll {
		return "", errors.New("mock synthesis failure")
	}
	if m.failNext {
		m.failNext = false
		return "", errors.New("mock synthesis failure")
	}
	return m.response, nil
}

func (m *MockSynthesizerService) Model() string {
	return "mock-synthesis-model"
}

func (m *MockSynthesizerService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockSynthesizerService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockSynthesizerService) SetResponse(response string) {
	m.response = response
}

func (m *MockSynthesizerService) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockSynthesizerService) SetFailAll(fail bool) {
	m.failAll = fail
}
