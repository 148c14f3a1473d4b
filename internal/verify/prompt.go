package verify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/proofstack/internal/model"
)

// snippetCharBudget bounds each snippet's contribution to the prompt so
// oracle payload limits are respected
const snippetCharBudget = 900

// BuildVerifyPrompt formats a claim and its evidence snippets as a strict
// JSON verification request
func BuildVerifyPrompt(claim model.Claim, snippets []model.EvidenceSnippet) string {
	var b strings.Builder

	b.WriteString("You are verifying whether a claim is supported by evidence snippets from source documents.\n\n")
	b.WriteString(fmt.Sprintf("Claim: %s\n\n", claim.Text))
	b.WriteString("Evidence snippets:\n")

	for _, snippet := range snippets {
		b.WriteString(fmt.Sprintf("[%s] %s\n", snippet.ID, truncate(snippet.Snippet, snippetCharBudget)))
	}

	b.WriteString("\nRespond with a JSON object containing exactly these fields:\n")
	b.WriteString(`{"verdict": "supported" | "weak" | "unsupported", "confidence": <number 0-1>, "reason": "<short explanation>", "evidenceIds": ["<snippet id>", ...]}` + "\n")
	b.WriteString("Only cite snippet IDs from the list above. Do not add any other keys or text.\n")

	return b.String()
}

// truncate cuts s to at most max bytes, backing up to the previous rune
// boundary so a multi-byte rune is never split
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
