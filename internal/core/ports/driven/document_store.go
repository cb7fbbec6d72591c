package driven

import (
	"context"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// DocumentStore persists the registry of ingested documents (PostgreSQL).
// The raw document bytes are not stored; only ingestion metadata is.
type DocumentStore interface {
	// Save creates or updates a document record
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves document records, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// Count returns the total number of document records
	Count(ctx context.Context) (int, error)

	// Delete removes a document record
	Delete(ctx context.Context, id string) error
}
