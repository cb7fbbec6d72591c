package runtime

import (
	"context"
	"testing"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven/mocks"
)

func TestServices_SetEmbeddingService_UpdatesFlags(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	if config.EmbeddingAvailable() {
		t.Error("embedding should start unavailable")
	}

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	if !config.EmbeddingAvailable() {
		t.Error("expected embedding available after set")
	}

	services.SetEmbeddingService(nil)
	if config.EmbeddingAvailable() {
		t.Error("expected embedding unavailable after clearing")
	}
}

func TestServices_SetSynthesizerService_UpdatesFlags(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	services.SetSynthesizerService(mocks.NewMockSynthesizerService())
	if !config.SynthesisAvailable() {
		t.Error("expected synthesis available after set")
	}
}

func TestServices_Close_ClearsEverything(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)
	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	services.SetSynthesizerService(mocks.NewMockSynthesizerService())

	if err := services.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service after close")
	}
	if services.SynthesizerService() != nil {
		t.Error("expected nil synthesizer after close")
	}
	if config.CanAnswerGrounded() {
		t.Error("expected grounded answering disabled after close")
	}
}

func TestServices_ValidateAndSetEmbedding(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	if err := services.ValidateAndSetEmbedding(context.Background(), mocks.NewMockEmbeddingService()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if services.EmbeddingService() == nil {
		t.Error("expected embedding service to be set")
	}
	if !config.CanIngest() {
		t.Error("expected ingestion capability after wiring embedding")
	}
}
