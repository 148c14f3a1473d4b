package redline

import (
	"fmt"
	"strings"

	"github.com/ppiankov/proofstack/internal/model"
)

// Output is the verdict-qualified rewrite of the draft answer
type Output struct {
	// VerifiedText is the redlined answer with inline citation labels
	VerifiedText string

	// DiffText is a lightweight length comparison between draft and
	// verified text; an observability signal, not a structural diff
	DiffText string
}

// labeler assigns sequential labels E1, E2, ... the first time a given
// evidence snippet ID is referenced; stable for the remainder of the call
type labeler struct {
	labelBySnippet map[string]string
	order          []string // snippet IDs in allocation order
}

func newLabeler() *labeler {
	return &labeler{labelBySnippet: make(map[string]string)}
}

func (l *labeler) labelFor(snippetID string) string {
	if label, ok := l.labelBySnippet[snippetID]; ok {
		return label
	}

	label := fmt.Sprintf("E%d", len(l.order)+1)
	l.labelBySnippet[snippetID] = label
	l.order = append(l.order, snippetID)
	return label
}

// Redline rewrites the draft answer into a verdict-qualified version with
// numbered evidence citations and a trailing label-to-snippet lineage index
func Redline(draftText string, claims []model.Claim, verdicts []model.ClaimVerdict, snippets []model.EvidenceSnippet) Output {
	verdictByClaim := make(map[string]model.ClaimVerdict, len(verdicts))
	for _, verdict := range verdicts {
		verdictByClaim[verdict.ClaimID] = verdict
	}

	evidenceByID := make(map[string]model.EvidenceSnippet, len(snippets))
	for _, snippet := range snippets {
		evidenceByID[snippet.ID] = snippet
	}

	labels := newLabeler()

	var supportedLines, weakLines, unsupportedLines []string

	for _, claim := range claims {
		verdict, hasVerdict := verdictByClaim[claim.ID]
		status := model.VerdictPending
		if hasVerdict {
			status = verdict.Verdict
		}

		refs := citationRefs(verdict, evidenceByID, labels)
		sentence := toSentence(claim.Text)
		if sentence == "" {
			continue
		}

		switch status {
		case model.VerdictSupported:
			supportedLines = append(supportedLines, fmt.Sprintf("- %s%s", sentence, refs))
		case model.VerdictWeak:
			weakLines = append(weakLines, fmt.Sprintf("- Likely: %s (insufficient evidence for full confidence).%s", sentence, refs))
		default:
			// unsupported and pending render the same way
			unsupportedLines = append(unsupportedLines, fmt.Sprintf("- Uncertain: %s (not supported by available evidence).%s", sentence, refs))
		}
	}

	var sections []string
	sections = append(sections, "Verified Answer", "")

	if len(supportedLines) > 0 {
		sections = append(sections, "Evidence-supported points:")
		sections = append(sections, supportedLines...)
		sections = append(sections, "")
	} else {
		sections = append(sections, "No claims are currently evidence-supported enough for a definitive verified answer.", "")
	}

	if len(weakLines) > 0 {
		sections = append(sections, "Qualified points (weak evidence):")
		sections = append(sections, weakLines...)
		sections = append(sections, "")
	}

	if len(unsupportedLines) > 0 {
		sections = append(sections, "Uncertain or unsupported points:")
		sections = append(sections, unsupportedLines...)
		sections = append(sections, "")
	}

	if len(labels.order) > 0 {
		sections = append(sections, "Evidence index:")
		for _, snippetID := range labels.order {
			sections = append(sections, fmt.Sprintf("[%s] = %s", labels.labelBySnippet[snippetID], snippetID))
		}
	}

	verifiedText := strings.TrimSpace(strings.Join(sections, "\n"))
	diffText := fmt.Sprintf("Draft length: %d chars\nVerified length: %d chars", len(draftText), len(verifiedText))

	return Output{
		VerifiedText: verifiedText,
		DiffText:     diffText,
	}
}

// citationRefs renders the verdict's cited snippet IDs as bracketed labels,
// skipping IDs that do not exist in the evidence pool
func citationRefs(verdict model.ClaimVerdict, evidenceByID map[string]model.EvidenceSnippet, labels *labeler) string {
	var refs []string
	for _, id := range verdict.EvidenceSnippetIDs {
		if _, ok := evidenceByID[id]; !ok {
			continue
		}
		refs = append(refs, "["+labels.labelFor(id)+"]")
	}

	if len(refs) == 0 {
		return ""
	}
	return " " + strings.Join(refs, " ")
}

// toSentence trims the claim text and ensures it ends with a terminator
func toSentence(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return trimmed
	}
	return trimmed + "."
}
