package driving

import (
	"context"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// IngestService is the document ingestion entry point exposed to the
// calling layer (HTTP upload handler, background worker).
type IngestService interface {
	// Ingest parses the document bytes, chunks the page texts, embeds
	// each chunk and upserts the results into the vector index.
	// Returns the chunk count on success. Errors propagate: a partial
	// ingestion may already have durable index writes the caller must
	// know about.
	Ingest(ctx context.Context, filename string, data []byte) (*domain.IngestResult, error)
}
