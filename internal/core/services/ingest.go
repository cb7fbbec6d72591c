package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driving"
	"github.com/medassist-labs/medassist-core/internal/loaders"
	"github.com/medassist-labs/medassist-core/internal/runtime"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService runs the ingestion pipeline:
// parse -> chunk -> embed -> upsert, with a durable registry record
// written at the end when a document store is wired.
type ingestService struct {
	loaderReg     driven.LoaderRegistry
	pipeline      driven.PostProcessorPipeline
	vectorIndex   driven.VectorIndex
	documentStore driven.DocumentStore // optional
	cache         driven.EmbeddingCache
	services      *runtime.Services
	indexSettings domain.IndexSettings
	logger        *slog.Logger
}

// IngestServiceConfig holds dependencies for the ingest service.
// DocumentStore and Cache are optional; nil disables them.
type IngestServiceConfig struct {
	LoaderRegistry driven.LoaderRegistry
	Pipeline       driven.PostProcessorPipeline
	VectorIndex    driven.VectorIndex
	DocumentStore  driven.DocumentStore
	Cache          driven.EmbeddingCache
	Services       *runtime.Services
	IndexSettings  domain.IndexSettings
	Logger         *slog.Logger
}

// NewIngestService creates a new IngestService.
// The embedding service is accessed dynamically via runtime.Services.
func NewIngestService(cfg IngestServiceConfig) driving.IngestService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ingestService{
		loaderReg:     cfg.LoaderRegistry,
		pipeline:      cfg.Pipeline,
		vectorIndex:   cfg.VectorIndex,
		documentStore: cfg.DocumentStore,
		cache:         cfg.Cache,
		services:      cfg.Services,
		indexSettings: cfg.IndexSettings,
		logger:        logger,
	}
}

// Ingest runs the full pipeline for one document.
func (s *ingestService) Ingest(ctx context.Context, filename string, data []byte) (*domain.IngestResult, error) {
	if filename == "" || len(data) == 0 {
		return nil, fmt.Errorf("%w: filename and data are required", domain.ErrInvalidInput)
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrServiceUnavailable)
	}

	docID := domain.DocumentID(filename)
	mimeType := loaders.MimeTypeForFilename(filename)

	loader := s.loaderReg.Get(mimeType)
	if loader == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}

	s.logger.Info("ingesting document", "document_id", docID, "filename", filename, "bytes", len(data))

	pages, err := loader.Load(ctx, data)
	if err != nil {
		s.recordFailure(ctx, docID, filename, mimeType, err)
		return nil, err
	}

	chunks := s.chunkPages(docID, pages)

	if len(chunks) > 0 {
		if err := s.embedAndIndex(ctx, embeddingService, filename, chunks); err != nil {
			s.recordFailure(ctx, docID, filename, mimeType, err)
			return nil, err
		}
	}

	if s.documentStore != nil {
		doc := &domain.Document{
			ID:         docID,
			Filename:   filename,
			MimeType:   mimeType,
			PageCount:  len(pages),
			ChunkCount: len(chunks),
			Status:     domain.IngestStatusCompleted,
			IngestedAt: time.Now(),
		}
		if err := s.documentStore.Save(ctx, doc); err != nil {
			// The index writes are durable; a registry miss is not fatal
			s.logger.Warn("failed to save document record", "document_id", docID, "error", err)
		}
	}

	s.logger.Info("document ingested",
		"document_id", docID,
		"pages", len(pages),
		"chunks", len(chunks))

	return &domain.IngestResult{
		DocumentID: docID,
		Filename:   filename,
		PageCount:  len(pages),
		ChunkCount: len(chunks),
	}, nil
}

// chunkPages runs each page through the post-processor pipeline and
// assigns deterministic chunk IDs. Position counts across the whole
// document, not per page.
func (s *ingestService) chunkPages(docID string, pages []string) []*domain.Chunk {
	var chunks []*domain.Chunk
	position := 0

	for i, page := range pages {
		for _, pc := range s.pipeline.Process(page) {
			chunks = append(chunks, &domain.Chunk{
				ID:         domain.ChunkID(docID, i+1, position),
				DocumentID: docID,
				Content:    pc.Content,
				Page:       i + 1,
				Position:   position,
				StartChar:  pc.StartOffset,
				EndChar:    pc.EndOffset,
				CreatedAt:  time.Now(),
			})
			position++
		}
	}

	return chunks
}

// embedAndIndex embeds all chunks and upserts them into the index.
func (s *ingestService) embedAndIndex(ctx context.Context, embedder driven.EmbeddingService, filename string, chunks []*domain.Chunk) error {
	vectors, err := s.embedChunks(ctx, embedder, chunks)
	if err != nil {
		return err
	}

	settings := s.indexSettings
	if err := s.vectorIndex.EnsureNamespace(ctx, settings.Namespace, settings.Dimension, settings.Metric); err != nil {
		return fmt.Errorf("ensure namespace %q: %w", settings.Namespace, err)
	}

	entries := make([]*domain.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = &domain.IndexEntry{
			ID:      chunk.ID,
			Vector:  vectors[i],
			Content: chunk.Content,
			Metadata: map[string]string{
				"document_id": chunk.DocumentID,
				"filename":    filename,
				"page":        strconv.Itoa(chunk.Page),
			},
		}
	}

	if err := s.vectorIndex.Upsert(ctx, settings.Namespace, entries); err != nil {
		return fmt.Errorf("upsert %d entries: %w", len(entries), err)
	}

	return nil
}

// embedChunks returns one vector per chunk, in chunk order. Cached
// vectors are reused; only misses go to the embedding service, in a
// single batch. Every vector is validated against the configured
// dimension before anything is indexed.
func (s *ingestService) embedChunks(ctx context.Context, embedder driven.EmbeddingService, chunks []*domain.Chunk) ([][]float32, error) {
	model := embedder.Model()
	vectors := make([][]float32, len(chunks))

	var missTexts []string
	var missIdx []int
	for i, chunk := range chunks {
		if s.cache != nil {
			if cached, err := s.cache.Get(ctx, model, chunk.Content); err == nil && cached != nil {
				vectors[i] = cached
				continue
			}
		}
		missTexts = append(missTexts, chunk.Content)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) > 0 {
		embedded, err := embedder.Embed(ctx, missTexts)
		if err != nil {
			return nil, fmt.Errorf("embed %d chunks: %w", len(missTexts), err)
		}
		if len(embedded) != len(missTexts) {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrEmbedding, len(embedded), len(missTexts))
		}
		for j, vector := range embedded {
			vectors[missIdx[j]] = vector
			if s.cache != nil {
				if err := s.cache.Set(ctx, model, missTexts[j], vector); err != nil {
					s.logger.Warn("failed to cache embedding", "error", err)
				}
			}
		}
	}

	want := s.indexSettings.Dimension
	for i, vector := range vectors {
		if len(vector) != want {
			return nil, fmt.Errorf("%w: chunk %s has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, chunks[i].ID, len(vector), want)
		}
	}

	return vectors, nil
}

// recordFailure writes a failed registry record, best-effort.
func (s *ingestService) recordFailure(ctx context.Context, docID, filename, mimeType string, cause error) {
	if s.documentStore == nil {
		return
	}
	doc := &domain.Document{
		ID:         docID,
		Filename:   filename,
		MimeType:   mimeType,
		Status:     domain.IngestStatusFailed,
		Error:      cause.Error(),
		IngestedAt: time.Now(),
	}
	if err := s.documentStore.Save(ctx, doc); err != nil {
		s.logger.Warn("failed to save failed document record", "document_id", docID, "error", err)
	}
}
