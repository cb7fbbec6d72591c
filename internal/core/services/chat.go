package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driving"
	"github.com/medassist-labs/medassist-core/internal/runtime"
)

const (
	// defaultTopK is how many neighbours retrieval asks for
	defaultTopK = 4

	// defaultThreshold is the minimum cosine similarity of the top
	// result for retrieved context to count as usable
	defaultThreshold = 0.5

	// maxQueryChars caps the query length passed downstream
	maxQueryChars = 1000
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService orchestrates the retrieval-and-answer pipeline.
//
// Health is decided once at construction: if the grounded path was not
// fully wired at that point, every answer for the lifetime of this
// instance comes from the fallback knowledge base. A healthy instance
// still degrades per call when a step fails, without changing state.
type chatService struct {
	vectorIndex   driven.VectorIndex
	services      *runtime.Services
	indexSettings domain.IndexSettings
	topK          int
	threshold     float64
	healthy       bool
	logger        *slog.Logger
}

// ChatServiceConfig holds dependencies for the chat service.
type ChatServiceConfig struct {
	VectorIndex   driven.VectorIndex
	Services      *runtime.Services
	IndexSettings domain.IndexSettings
	Logger        *slog.Logger
}

// NewChatService creates a new ChatService. The health state is
// captured here and never re-evaluated.
func NewChatService(cfg ChatServiceConfig) driving.ChatService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	healthy := cfg.VectorIndex != nil && cfg.Services.Config().CanAnswerGrounded()
	if !healthy {
		logger.Warn("grounded answer path unavailable, running on fallback knowledge base only")
	}

	return &chatService{
		vectorIndex:   cfg.VectorIndex,
		services:      cfg.Services,
		indexSettings: cfg.IndexSettings,
		topK:          defaultTopK,
		threshold:     defaultThreshold,
		healthy:       healthy,
		logger:        logger,
	}
}

// Healthy reports whether the grounded path was wired at construction.
func (s *chatService) Healthy() bool {
	return s.healthy
}

// Answer produces a response for the query. It never fails; every
// internal error degrades to a fallback or no-context answer.
func (s *chatService) Answer(ctx context.Context, query string) *domain.Answer {
	start := time.Now()
	query = truncateQuery(query)

	if !s.healthy {
		return s.fallback(query, start)
	}

	embedder := s.services.EmbeddingService()
	if embedder == nil {
		s.logger.Warn("embedding service missing at query time")
		return s.fallback(query, start)
	}

	vector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed", "error", err)
		return s.fallback(query, start)
	}
	if len(vector) != s.indexSettings.Dimension {
		s.logger.Warn("query vector has wrong dimension",
			"got", len(vector), "want", s.indexSettings.Dimension)
		return s.fallback(query, start)
	}

	results, err := s.vectorIndex.Search(ctx, s.indexSettings.Namespace, vector, s.topK)
	if err != nil {
		// Index trouble at query time means no usable context,
		// not a hard failure
		s.logger.Warn("similarity search failed", "error", err)
		return s.noContext(start)
	}

	if !usableContext(results, s.threshold) {
		return s.noContext(start)
	}

	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Content
	}

	synthesizer := s.services.SynthesizerService()
	if synthesizer == nil {
		s.logger.Warn("synthesizer missing at query time")
		return s.fallback(query, start)
	}

	text, err := synthesizer.Synthesize(ctx, query, contexts)
	if err != nil {
		s.logger.Warn("answer synthesis failed", "error", err)
		return s.fallback(query, start)
	}

	return &domain.Answer{
		Text:   text,
		Source: domain.AnswerSourceSynthesized,
		Took:   time.Since(start),
	}
}

func (s *chatService) fallback(query string, start time.Time) *domain.Answer {
	return &domain.Answer{
		Text:   FallbackResponse(query),
		Source: domain.AnswerSourceFallback,
		Took:   time.Since(start),
	}
}

func (s *chatService) noContext(start time.Time) *domain.Answer {
	return &domain.Answer{
		Text:   domain.NoContextMessage,
		Source: domain.AnswerSourceNoContext,
		Took:   time.Since(start),
	}
}

// usableContext is the confidence gate: results must be non-empty and
// the top score must reach the threshold. The single decision point
// keeps irrelevant context away from the synthesizer.
func usableContext(results []*domain.RankedChunk, threshold float64) bool {
	return len(results) > 0 && results[0].Score >= threshold
}

// truncateQuery caps the query at maxQueryChars characters.
func truncateQuery(query string) string {
	runes := []rune(query)
	if len(runes) <= maxQueryChars {
		return query
	}
	return string(runes[:maxQueryChars])
}
