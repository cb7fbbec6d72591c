package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrParse indicates the source document could not be parsed.
	// Fatal to that ingestion call.
	ErrParse = errors.New("document parse failed")

	// ErrEmbedding indicates the embedding backend failed.
	// Transient; the core does not retry.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndexProvisioning indicates the vector index namespace could
	// not be created or verified. Fails ingestion.
	ErrIndexProvisioning = errors.New("index provisioning failed")

	// ErrIndexQuery indicates a vector index operation failed.
	// Query-time occurrences degrade to "no usable context".
	ErrIndexQuery = errors.New("index query failed")

	// ErrSynthesis indicates the answer synthesizer failed.
	// Degrades that single request to the fallback responder.
	ErrSynthesis = errors.New("answer synthesis failed")

	// ErrDimensionMismatch indicates a vector does not match the
	// configured embedding dimension. Checked before any backend call.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates the AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrUnsupportedType indicates no loader is registered for the
	// document's MIME type
	ErrUnsupportedType = errors.New("unsupported document type")
)
