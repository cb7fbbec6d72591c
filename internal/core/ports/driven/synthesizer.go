package driven

import (
	"context"
)

// SynthesizerService produces a grounded answer from retrieved context.
// Implementations must instruct the underlying model to answer strictly
// from the supplied context and to emit domain.RefusalMessage verbatim
// when the context does not ground the question.
type SynthesizerService interface {
	// Synthesize answers the query using only the supplied context
	// chunks. Returns domain.RefusalMessage when the model finds no
	// grounding. Invocation failures are not retried.
	Synthesize(ctx context.Context, query string, contexts []string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the synthesis service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the synthesis service
	Close() error
}
