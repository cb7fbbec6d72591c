package driven

import (
	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service from settings.
	// Returns nil, nil if settings are not configured.
	CreateEmbeddingService(settings *domain.EmbeddingSettings) (EmbeddingService, error)

	// CreateSynthesizerService creates a synthesizer from settings.
	// Returns nil, nil if settings are not configured.
	CreateSynthesizerService(settings *domain.SynthesizerSettings) (SynthesizerService, error)
}
