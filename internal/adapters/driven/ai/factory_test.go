package ai

import (
	"errors"
	"testing"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

func TestFactory_CreateEmbeddingService_NilSettings(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateEmbeddingService(nil)
	if err != nil {
		t.Errorf("expected no error for nil settings, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for nil settings")
	}
}

func TestFactory_CreateEmbeddingService_NotConfigured(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{})
	if err != nil {
		t.Errorf("expected no error for unconfigured settings, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for unconfigured settings")
	}
}

func TestFactory_CreateEmbeddingService_Gemini(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateEmbeddingService(domain.DefaultEmbeddingSettings("test-key"))
	if err != nil {
		t.Fatalf("expected no error for Gemini, got %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service")
	}
	if svc.Model() != "embedding-001" {
		t.Errorf("unexpected model %s", svc.Model())
	}
	if svc.Dimensions() != 768 {
		t.Errorf("expected 768 dimensions, got %d", svc.Dimensions())
	}
}

func TestFactory_CreateEmbeddingService_OpenAI(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("expected no error for OpenAI, got %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service")
	}
}

func TestFactory_CreateEmbeddingService_UnknownProvider(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: "mystery",
		APIKey:   "key",
	})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestFactory_CreateSynthesizerService_NilSettings(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateSynthesizerService(nil)
	if err != nil {
		t.Errorf("expected no error for nil settings, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for nil settings")
	}
}

func TestFactory_CreateSynthesizerService_Gemini(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateSynthesizerService(domain.DefaultSynthesizerSettings("test-key"))
	if err != nil {
		t.Fatalf("expected no error for Gemini, got %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service")
	}
	if svc.Model() != "gemini-2.0-flash" {
		t.Errorf("unexpected model %s", svc.Model())
	}
}

func TestFactory_CreateSynthesizerService_UnknownProvider(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateSynthesizerService(&domain.SynthesizerSettings{
		Provider: "mystery",
		APIKey:   "key",
	})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}
