package retrieve

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/proofstack/internal/model"
)

// DefaultTopK is the number of evidence snippets retrieved per claim
const DefaultTopK = 3

// Retriever ranks chunks against a claim by lexical token overlap.
// It has no side effects and is safe to call per-claim in parallel.
type Retriever struct {
	topK int
}

// NewRetriever creates a retriever returning up to topK snippets per claim
func NewRetriever(topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{topK: topK}
}

// Retrieve scores every chunk against the claim and returns the top-K as
// evidence snippets numbered 1..K in rank order.
//
// The relevance score is |claimTokens ∩ chunkTokens| / max(1, |claimTokens|):
// it measures how much of the claim's vocabulary the chunk covers, not
// general similarity. Ties are broken by ascending chunk ID so ranking is
// fully deterministic.
func (r *Retriever) Retrieve(claim model.Claim, chunks []model.Chunk) []model.EvidenceSnippet {
	claimTokens := tokenSet(claim.Text)
	denominator := len(claimTokens)
	if denominator == 0 {
		denominator = 1
	}

	type scored struct {
		chunk model.Chunk
		score float64
	}

	ranked := make([]scored, 0, len(chunks))
	for _, chunk := range chunks {
		chunkTokens := tokenSet(chunk.Text)

		overlap := 0
		for token := range claimTokens {
			if _, ok := chunkTokens[token]; ok {
				overlap++
			}
		}

		ranked = append(ranked, scored{
			chunk: chunk,
			score: float64(overlap) / float64(denominator),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].chunk.ID < ranked[j].chunk.ID
	})

	limit := r.topK
	if limit > len(ranked) {
		limit = len(ranked)
	}

	snippets := make([]model.EvidenceSnippet, 0, limit)
	for i := 0; i < limit; i++ {
		snippets = append(snippets, model.EvidenceSnippet{
			ID:             fmt.Sprintf("%s-evidence-%d", claim.ID, i+1),
			ClaimID:        claim.ID,
			SourceID:       ranked[i].chunk.SourceID,
			Snippet:        ranked[i].chunk.Text,
			RelevanceScore: ranked[i].score,
		})
	}

	return snippets
}

// tokenSet lowercases the text and splits it on runs of non-alphanumeric
// characters, discarding tokens of length <= 1
func tokenSet(text string) map[string]struct{} {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if len(token) <= 1 {
			continue
		}
		set[token] = struct{}{}
	}

	return set
}
