package loaders

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry implements LoaderRegistry with priority-based selection.
// When multiple loaders match a MIME type, the highest priority one is used.
type Registry struct {
	mu      sync.RWMutex
	loaders []driven.DocumentLoader
}

// NewRegistry creates a new loader registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders: make([]driven.DocumentLoader, 0),
	}
}

// Register registers a loader.
// Loaders are stored and later selected by priority.
func (r *Registry) Register(loader driven.DocumentLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loaders = append(r.loaders, loader)
}

// Get retrieves the best-matching loader for a MIME type.
// Returns nil if no loader is registered for the type.
// When multiple match, the highest priority loader is returned.
func (r *Registry) Get(mimeType string) driven.DocumentLoader {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []driven.DocumentLoader
	for _, l := range r.loaders {
		if matchesMIMEType(l.SupportedTypes(), mimeType) {
			matches = append(matches, l)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})
	return matches[0]
}

// List returns all registered MIME types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[string]struct{})
	for _, l := range r.loaders {
		for _, t := range l.SupportedTypes() {
			typeSet[t] = struct{}{}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// matchesMIMEType checks if any of the supported types match the given MIME type.
// Supports wildcard matching (e.g., "application/*" matches "application/pdf").
func matchesMIMEType(supportedTypes []string, mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	// Strip charset and other parameters
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	for _, supported := range supportedTypes {
		supported = strings.ToLower(strings.TrimSpace(supported))

		if supported == mimeType {
			return true
		}

		if strings.HasSuffix(supported, "/*") {
			prefix := supported[:len(supported)-1]
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}

		if supported == "*/*" {
			return true
		}
	}

	return false
}

// MimeTypeForFilename guesses the MIME type from the file extension.
// Unknown extensions default to PDF since that is the only ingestion
// source today.
func MimeTypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/pdf"
	}
}
