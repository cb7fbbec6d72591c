package domain

import "time"

// AnswerSource tags where an answer came from, for observability.
type AnswerSource string

const (
	// AnswerSourceSynthesized means the answer was grounded in retrieved context
	AnswerSourceSynthesized AnswerSource = "synthesized"
	// AnswerSourceFallback means the static knowledge base produced the answer
	AnswerSourceFallback AnswerSource = "fallback"
	// AnswerSourceNoContext means retrieval found nothing usable
	AnswerSourceNoContext AnswerSource = "no-context"
)

// Answer is the final response returned to the caller.
type Answer struct {
	Text   string        `json:"text"`
	Source AnswerSource  `json:"source"`
	Took   time.Duration `json:"took"`
}

// RankedChunk is a retrieval result: chunk text with its similarity
// score, ordered by descending similarity.
type RankedChunk struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RefusalMessage is the fixed string the synthesizer is instructed to
// emit verbatim when the supplied context does not ground the question.
const RefusalMessage = "Sorry, I couldn't find relevant information."

// NoContextMessage is returned when retrieval yields no usable context.
const NoContextMessage = "Sorry, I couldn't find relevant information in the knowledge base."
