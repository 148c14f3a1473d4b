package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/proofstack/internal/llm"
	"github.com/ppiankov/proofstack/internal/model"
)

// MaxClaims caps extraction output for latency control
const MaxClaims = 12

const extractSystemMessage = "You decompose an answer into atomic, independently verifiable claims. Respond with strict JSON only."

// ClaimExtractor converts a draft answer into atomic verification claims.
// The oracle path is validated strictly and retried once; any remaining
// failure degrades to a deterministic sentence-splitting heuristic, so
// extraction always produces a bounded claim list.
type ClaimExtractor struct {
	judge     llm.Judge // nil means heuristic-only operation
	maxClaims int
}

// NewClaimExtractor creates a claim extractor. A nil judge disables oracle
// calls and uses the heuristic exclusively.
func NewClaimExtractor(judge llm.Judge, maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 || maxClaims > MaxClaims {
		maxClaims = MaxClaims
	}
	return &ClaimExtractor{
		judge:     judge,
		maxClaims: maxClaims,
	}
}

// extractedClaim is the strict per-claim shape expected from the oracle
type extractedClaim struct {
	Text        string `json:"text"`
	ClaimType   string `json:"claimType"`
	Criticality string `json:"criticality"`
}

type extractResponse struct {
	Claims []extractedClaim `json:"claims"`
}

// Extract decomposes the draft text into at most maxClaims claims with
// deterministic IDs claim-1, claim-2, ...
func (e *ClaimExtractor) Extract(ctx context.Context, draftText string) []model.Claim {
	if e.judge != nil {
		// One retry, then fall back; bounding latency matters more than a
		// third oracle attempt.
		for attempt := 0; attempt < 2; attempt++ {
			claims, ok := e.extractViaOracle(ctx, draftText)
			if ok {
				return claims
			}
		}
	}

	return e.extractHeuristic(draftText)
}

func (e *ClaimExtractor) extractViaOracle(ctx context.Context, draftText string) ([]model.Claim, bool) {
	response, err := e.judge.Judge(ctx, llm.JudgeRequest{
		System:   extractSystemMessage,
		Prompt:   buildExtractPrompt(draftText, e.maxClaims),
		JSONMode: true,
	})
	if err != nil {
		return nil, false
	}

	var parsed extractResponse
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Claims) == 0 {
		return nil, false
	}

	claims := make([]model.Claim, 0, e.maxClaims)
	for _, raw := range parsed.Claims {
		text := strings.TrimSpace(raw.Text)
		if text == "" {
			return nil, false
		}

		claimType := model.ClaimType(strings.ToLower(raw.ClaimType))
		if !claimType.IsValid() {
			return nil, false
		}

		criticality := model.Criticality(strings.ToLower(raw.Criticality))
		if !criticality.IsValid() {
			return nil, false
		}

		claims = append(claims, model.Claim{
			ID:          fmt.Sprintf("claim-%d", len(claims)+1),
			Text:        text,
			ClaimType:   claimType,
			Criticality: criticality,
		})
		if len(claims) == e.maxClaims {
			break
		}
	}

	return claims, true
}

// extractHeuristic splits the draft into sentences and classifies each one
// by keyword. Deterministic; used whenever the oracle is unavailable or
// returns malformed output.
func (e *ClaimExtractor) extractHeuristic(draftText string) []model.Claim {
	sentences := splitSentences(draftText)

	claims := make([]model.Claim, 0, e.maxClaims)
	for _, sentence := range dedupe(sentences) {
		claims = append(claims, model.Claim{
			ID:          fmt.Sprintf("claim-%d", len(claims)+1),
			Text:        sentence,
			ClaimType:   classifyType(sentence),
			Criticality: classifyCriticality(sentence),
		})
		if len(claims) == e.maxClaims {
			break
		}
	}

	return claims
}

func buildExtractPrompt(draftText string, maxClaims int) string {
	var b strings.Builder
	b.WriteString("Decompose the following answer into atomic factual claims.\n\n")
	b.WriteString("Answer:\n")
	b.WriteString(draftText)
	b.WriteString("\n\nRespond with a JSON object of the form:\n")
	b.WriteString(`{"claims": [{"text": "<claim>", "claimType": "fact" | "number" | "recommendation", "criticality": "low" | "medium" | "high"}]}` + "\n")
	b.WriteString(fmt.Sprintf("Return at most %d claims. No other keys, no prose.\n", maxClaims))
	return b.String()
}

// classifyType tags a sentence as number, recommendation, or fact
func classifyType(sentence string) model.ClaimType {
	lower := strings.ToLower(sentence)

	for _, keyword := range []string{"should", "recommend", "must ", "needs to", "advise"} {
		if strings.Contains(lower, keyword) {
			return model.ClaimTypeRecommendation
		}
	}

	if strings.ContainsAny(sentence, "0123456789") {
		return model.ClaimTypeNumber
	}

	return model.ClaimTypeFact
}

// classifyCriticality tags a sentence by severity keywords
func classifyCriticality(sentence string) model.Criticality {
	lower := strings.ToLower(sentence)

	for _, keyword := range []string{"breach", "exfiltrat", "compromis", "critical", "unauthorized", "credential"} {
		if strings.Contains(lower, keyword) {
			return model.CriticalityHigh
		}
	}

	for _, keyword := range []string{"block", "contain", "mitigat", "incident", "attack", "failed"} {
		if strings.Contains(lower, keyword) {
			return model.CriticalityMedium
		}
	}

	return model.CriticalityLow
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 20 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}

// dedupe removes duplicate sentences, preserving first-seen order
func dedupe(sentences []string) []string {
	seen := make(map[string]bool, len(sentences))
	var unique []string

	for _, sentence := range sentences {
		key := strings.ToLower(strings.TrimSpace(sentence))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, sentence)
		}
	}

	return unique
}
