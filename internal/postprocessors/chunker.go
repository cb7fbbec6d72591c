package postprocessors

import (
	"strings"

	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// ChunkConfig configures the chunker behavior.
// Sizes are measured in characters (runes), not bytes.
type ChunkConfig struct {
	// ChunkSize is the maximum characters per chunk
	ChunkSize int

	// Overlap is the character overlap between consecutive chunks.
	// Must be smaller than ChunkSize.
	Overlap int
}

// DefaultChunkConfig returns the production chunking parameters.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize: 1000,
		Overlap:   200,
	}
}

// Chunker splits content into fixed-size overlapping chunks.
// Splitting is purely positional so the same input always yields the
// same chunk sequence: every interior boundary shares exactly Overlap
// characters with the previous chunk, and no content falls between
// chunks. This is typically the first processor in the pipeline.
type Chunker struct {
	config ChunkConfig
}

// Verify interface compliance
var _ driven.PostProcessor = (*Chunker)(nil)

// NewChunker creates a new chunker with the given config.
func NewChunker(config ChunkConfig) *Chunker {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 1000
	}
	if config.Overlap < 0 {
		config.Overlap = 0
	}
	if config.Overlap >= config.ChunkSize {
		// Overlap must stay below chunk size or splitting cannot advance
		config.Overlap = config.ChunkSize / 5
	}
	return &Chunker{config: config}
}

// Process splits content into chunks.
func (c *Chunker) Process(chunks []driven.Chunk) []driven.Chunk {
	var result []driven.Chunk
	position := 0

	for _, chunk := range chunks {
		result = append(result, c.splitContent(chunk.Content, chunk.StartOffset, &position)...)
	}

	return result
}

// Name returns the processor name.
func (c *Chunker) Name() string {
	return "chunker"
}

// Order returns 0 - chunker should be first.
func (c *Chunker) Order() int {
	return 0
}

// splitContent splits content into overlapping chunks.
func (c *Chunker) splitContent(content string, baseOffset int, position *int) []driven.Chunk {
	runes := []rune(content)
	if len(runes) == 0 {
		return nil
	}

	if len(runes) <= c.config.ChunkSize {
		chunk := driven.Chunk{
			Content:     content,
			Position:    *position,
			StartOffset: baseOffset,
			EndOffset:   baseOffset + len(runes),
		}
		*position++
		return []driven.Chunk{chunk}
	}

	var chunks []driven.Chunk
	step := c.config.ChunkSize - c.config.Overlap
	start := 0

	for start < len(runes) {
		end := start + c.config.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, driven.Chunk{
			Content:     string(runes[start:end]),
			Position:    *position,
			StartOffset: baseOffset + start,
			EndOffset:   baseOffset + end,
		})
		*position++

		if end >= len(runes) {
			break
		}
		start += step
	}

	return chunks
}

// EmptyFilter drops chunks that contain only whitespace. It never
// modifies chunk content, so the overlap invariant between surviving
// chunks is untouched.
type EmptyFilter struct{}

// Verify interface compliance
var _ driven.PostProcessor = (*EmptyFilter)(nil)

// NewEmptyFilter creates a new empty-chunk filter.
func NewEmptyFilter() *EmptyFilter {
	return &EmptyFilter{}
}

// Process drops whitespace-only chunks.
func (f *EmptyFilter) Process(chunks []driven.Chunk) []driven.Chunk {
	result := chunks[:0]
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) == "" {
			continue
		}
		result = append(result, chunk)
	}
	return result
}

// Name returns the processor name.
func (f *EmptyFilter) Name() string {
	return "empty-filter"
}

// Order returns 1 - runs after the chunker.
func (f *EmptyFilter) Order() int {
	return 1
}
