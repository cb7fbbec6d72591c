package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates or updates a document record
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, filename, mime_type, page_count, chunk_count, status, error, ingested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			mime_type = EXCLUDED.mime_type,
			page_count = EXCLUDED.page_count,
			chunk_count = EXCLUDED.chunk_count,
			status = EXCLUDED.status,
			error = EXCLUDED.error,
			ingested_at = EXCLUDED.ingested_at
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Filename,
		doc.MimeType,
		doc.PageCount,
		doc.ChunkCount,
		string(doc.Status),
		doc.Error,
		doc.IngestedAt,
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, filename, mime_type, page_count, chunk_count, status, error, ingested_at
		FROM documents
		WHERE id = $1
	`

	doc := &domain.Document{}
	var status string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.MimeType,
		&doc.PageCount,
		&doc.ChunkCount,
		&status,
		&doc.Error,
		&doc.IngestedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Status = domain.IngestStatus(status)
	return doc, nil
}

// List retrieves document records, newest first
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, filename, mime_type, page_count, chunk_count, status, error, ingested_at
		FROM documents
		ORDER BY ingested_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc := &domain.Document{}
		var status string
		if err := rows.Scan(
			&doc.ID,
			&doc.Filename,
			&doc.MimeType,
			&doc.PageCount,
			&doc.ChunkCount,
			&status,
			&doc.Error,
			&doc.IngestedAt,
		); err != nil {
			return nil, err
		}
		doc.Status = domain.IngestStatus(status)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Count returns the total number of document records
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// Delete removes a document record
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}
