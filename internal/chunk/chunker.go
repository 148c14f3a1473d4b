package chunk

import (
	"fmt"
	"strings"

	"github.com/ppiankov/proofstack/internal/model"
)

// DefaultWindowWords is the fixed chunk window size in whitespace tokens
const DefaultWindowWords = 120

// Chunker splits source documents into fixed-size text windows.
// Chunking is pure: the same input text always yields identical chunk IDs
// and boundaries, which downstream evidence-lineage lookups rely on.
type Chunker struct {
	windowWords int
}

// NewChunker creates a chunker with the given window size in words.
// Non-positive sizes fall back to the default.
func NewChunker(windowWords int) *Chunker {
	if windowWords <= 0 {
		windowWords = DefaultWindowWords
	}
	return &Chunker{windowWords: windowWords}
}

// Chunk splits each source's content into windows of up to windowWords
// whitespace tokens. The last window may be shorter. Sources whose content
// yields zero tokens emit no chunks.
func (c *Chunker) Chunk(sources []model.SourceDoc) []model.Chunk {
	var chunks []model.Chunk

	for _, source := range sources {
		words := strings.Fields(source.Content)
		if len(words) == 0 {
			continue
		}

		seq := 0
		for start := 0; start < len(words); start += c.windowWords {
			end := start + c.windowWords
			if end > len(words) {
				end = len(words)
			}

			seq++
			window := words[start:end]
			chunks = append(chunks, model.Chunk{
				ID:            fmt.Sprintf("%s-chunk-%03d", source.ID, seq),
				SourceID:      source.ID,
				Text:          strings.Join(window, " "),
				TokenEstimate: len(window),
			})
		}
	}

	return chunks
}
