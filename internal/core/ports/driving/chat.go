package driving

import (
	"context"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
)

// ChatService answers natural-language questions against the ingested
// corpus. Answer never fails: the worst case is a fallback or
// disclaimer response.
type ChatService interface {
	// Answer embeds the query, searches the index, gates the results on
	// a confidence threshold and synthesizes a grounded answer. Every
	// failure along the way degrades to the fallback knowledge base or
	// a fixed no-context message instead of surfacing an error.
	Answer(ctx context.Context, query string) *domain.Answer

	// Healthy reports whether the grounded answer path was wired at
	// construction. A false value is permanent for this instance.
	Healthy() bool
}
