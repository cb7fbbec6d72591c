package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// IngestStatus represents the outcome of a document ingestion
type IngestStatus string

const (
	IngestStatusPending   IngestStatus = "pending"
	IngestStatusCompleted IngestStatus = "completed"
	IngestStatusFailed    IngestStatus = "failed"
)

// Document represents an ingested source document.
// The raw bytes are transient; only this registry record is durable.
type Document struct {
	ID         string       `json:"id"`
	Filename   string       `json:"filename"`
	MimeType   string       `json:"mime_type"`
	PageCount  int          `json:"page_count"`
	ChunkCount int          `json:"chunk_count"`
	Status     IngestStatus `json:"status"`
	Error      string       `json:"error,omitempty"`
	IngestedAt time.Time    `json:"ingested_at"`
}

// Chunk is a bounded-length segment of document text, the unit of
// embedding and indexing. Consecutive chunks from the same page share
// an overlap of content so no text falls between chunk boundaries.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	Page       int       `json:"page"`     // 1-based physical page
	Position   int       `json:"position"` // chunk index within the document
	StartChar  int       `json:"start_char"`
	EndChar    int       `json:"end_char"`
	CreatedAt  time.Time `json:"created_at"`
}

// IndexEntry is the (vector, text, metadata) triple persisted in the
// vector index under a namespace.
type IndexEntry struct {
	ID       string            `json:"id"`
	Vector   []float32         `json:"vector"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IngestResult is returned to the caller after a successful ingestion.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	PageCount  int    `json:"page_count"`
	ChunkCount int    `json:"chunk_count"`
}

// DocumentID derives a stable document ID from the filename so that
// re-ingesting the same file produces the same chunk IDs.
func DocumentID(filename string) string {
	h := sha1.Sum([]byte(filename))
	return hex.EncodeToString(h[:8])
}

// ChunkID builds a deterministic chunk ID from document, page and position.
func ChunkID(documentID string, page, position int) string {
	return fmt.Sprintf("%s:%d:%d", documentID, page, position)
}
