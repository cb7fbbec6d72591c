package driven

import (
	"context"
)

// DocumentLoader parses a raw document byte stream into ordered page
// texts, one string per physical page.
type DocumentLoader interface {
	// Load extracts page texts from the document bytes.
	// Returns domain.ErrParse (wrapped) on corrupt/unreadable input.
	Load(ctx context.Context, data []byte) ([]string, error)

	// SupportedTypes returns MIME types this loader handles.
	// Can include wildcards like "application/*" or specific types.
	SupportedTypes() []string

	// Priority returns the loader priority (higher = more specific).
	// When multiple loaders match a MIME type, the highest wins.
	Priority() int
}

// LoaderRegistry manages document loaders.
// Only PDF is registered today; new source formats plug in here.
type LoaderRegistry interface {
	// Get retrieves the best-matching loader for a MIME type.
	// Returns nil if no loader is registered for the type.
	Get(mimeType string) DocumentLoader

	// Register registers a loader.
	Register(loader DocumentLoader)

	// List returns all registered MIME types.
	List() []string
}
