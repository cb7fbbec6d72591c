package runtime

import (
	"context"
	"sync"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Services holds references to the external AI services.
// Both can be nil when their backend is not configured or unreachable;
// capability flags on the RuntimeConfig track availability.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Wired services (can be nil)
	embeddingService   driven.EmbeddingService
	synthesizerService driven.SynthesizerService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// SynthesizerService returns the current synthesizer (may be nil)
func (s *Services) SynthesizerService() driven.SynthesizerService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synthesizerService
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}

	s.embeddingService = svc
	s.config.SetEmbeddingAvailable(svc != nil)
}

// SetSynthesizerService updates the synthesizer.
// Closes the old service if present. Updates config flags.
func (s *Services) SetSynthesizerService(svc driven.SynthesizerService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.synthesizerService != nil {
		_ = s.synthesizerService.Close()
	}

	s.synthesizerService = svc
	s.config.SetSynthesisAvailable(svc != nil)
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.synthesizerService != nil {
		_ = s.synthesizerService.Close()
		s.synthesizerService = nil
	}

	s.config.SetEmbeddingAvailable(false)
	s.config.SetSynthesisAvailable(false)

	return nil
}

// ValidateAndSetEmbedding validates connectivity before setting the
// embedding service
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetSynthesizer validates connectivity before setting the
// synthesizer
func (s *Services) ValidateAndSetSynthesizer(ctx context.Context, svc driven.SynthesizerService) error {
	if svc == nil {
		s.SetSynthesizerService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetSynthesizerService(svc)
	return nil
}
