package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/proofstack/internal/model"
	"github.com/ppiankov/proofstack/internal/score"
)

// Renderer writes verification sessions as JSON and Markdown reports
type Renderer struct {
	includeFooter bool
	scorer        *score.Scorer
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		scorer:        score.NewScorer(),
	}
}

// RenderJSON writes the full session to a JSON file
func (r *Renderer) RenderJSON(session *model.VerificationSession, path string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the trust report to a Markdown file
func (r *Renderer) RenderMarkdown(session *model.VerificationSession, path string) error {
	if err := os.WriteFile(path, []byte(r.buildMarkdown(session)), 0644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}

// buildMarkdown renders the complete trust report. Sessions persisted
// before the breakdown fields existed get them recomputed via the scorer.
func (r *Renderer) buildMarkdown(session *model.VerificationSession) string {
	breakdown := session.TrustReport.ScoreBreakdown
	if breakdown == nil {
		recomputed := r.scorer.Score(session.Claims, session.ClaimVerdicts)
		breakdown = recomputed.ScoreBreakdown
	}

	impact := session.TrustReport.ImpactMetrics
	if impact == nil {
		recomputed := r.scorer.ImpactMetrics(session.Claims, session.ClaimVerdicts)
		impact = &recomputed
	}

	decision := r.scorer.Decide(session.Claims, session.ClaimVerdicts)

	verdictByClaim := make(map[string]model.ClaimVerdict, len(session.ClaimVerdicts))
	for _, verdict := range session.ClaimVerdicts {
		verdictByClaim[verdict.ClaimID] = verdict
	}

	evidenceByClaim := make(map[string][]model.EvidenceSnippet, len(session.Claims))
	for _, snippet := range session.EvidenceSnippets {
		evidenceByClaim[snippet.ClaimID] = append(evidenceByClaim[snippet.ClaimID], snippet)
	}

	sourceByID := make(map[string]string, len(session.Sources))
	for _, source := range session.Sources {
		sourceByID[source.ID] = source.FileName
	}

	var b strings.Builder

	b.WriteString("# ProofStack Trust Report\n\n")

	b.WriteString("## Metadata\n")
	fmt.Fprintf(&b, "- Session ID: %s\n", session.ID)
	fmt.Fprintf(&b, "- Generated At: %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Session Created At: %s\n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Domain: %s\n", session.Domain)
	fmt.Fprintf(&b, "- Strictness: %s\n", session.Strictness)
	fmt.Fprintf(&b, "- Demo Dataset: %v\n\n", session.UseDemoDataset)

	b.WriteString("## Trust Summary\n")
	fmt.Fprintf(&b, "- Trust Score: %d\n", session.TrustReport.TrustScore)
	fmt.Fprintf(&b, "- Supported: %d\n", session.TrustReport.SupportedCount)
	fmt.Fprintf(&b, "- Weak: %d\n", session.TrustReport.WeakCount)
	fmt.Fprintf(&b, "- Unsupported: %d\n", session.TrustReport.UnsupportedCount)
	fmt.Fprintf(&b, "- Supported Claims %%: %d%%\n", impact.SupportedRatePct)
	fmt.Fprintf(&b, "- Critical Unsupported Count: %d\n", impact.CriticalUnsupportedCount)
	fmt.Fprintf(&b, "- Estimated Time-to-Review: %.1f minutes\n", impact.EstimatedReviewMinutes)
	fmt.Fprintf(&b, "- Review-Time Formula: %s\n", impact.ReviewTimeFormula)
	fmt.Fprintf(&b, "- Raw Points: %.2f\n", breakdown.RawPoints)
	fmt.Fprintf(&b, "- Normalized Score (pre-clamp): %.2f\n", breakdown.NormalizedScore)
	fmt.Fprintf(&b, "- Formula: %s\n\n", breakdown.Formula)

	b.WriteString("### Score Explainability\n")
	b.WriteString("| Rule | Weight | Count |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	fmt.Fprintf(&b, "| Supported | %.2f | %d |\n", breakdown.Weights.Supported, breakdown.Counts.Supported)
	fmt.Fprintf(&b, "| Weak | %.2f | %d |\n", breakdown.Weights.Weak, breakdown.Counts.Weak)
	fmt.Fprintf(&b, "| Unsupported | %.2f | %d |\n", breakdown.Weights.Unsupported, breakdown.Counts.Unsupported)
	fmt.Fprintf(&b, "| Pending | %.2f | %d |\n", breakdown.Weights.Pending, breakdown.Counts.Pending)
	fmt.Fprintf(&b, "| Critical Unsupported Penalty | -%.2f | %d |\n", breakdown.Weights.CriticalUnsupportedPenalty, breakdown.Counts.CriticalUnsupported)
	fmt.Fprintf(&b, "| Contradiction Penalty | -%.2f | %d |\n\n", breakdown.Weights.ContradictionPenalty, breakdown.Counts.Contradictions)

	b.WriteString("### Per-Claim Score Contributions\n")
	b.WriteString("| Claim ID | Verdict | Criticality | Base | Penalty | Net |\n")
	b.WriteString("| --- | --- | --- | ---: | ---: | ---: |\n")
	for _, c := range breakdown.ClaimContributions {
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f | %.2f | %.2f |\n",
			escapeCell(c.ClaimID), c.Verdict, c.Criticality, c.BasePoints, c.PenaltyPoints, c.NetPoints)
	}
	b.WriteString("\n")

	b.WriteString("### Top Risks\n")
	if len(session.TrustReport.TopRisks) > 0 {
		for _, risk := range session.TrustReport.TopRisks {
			fmt.Fprintf(&b, "- %s\n", risk)
		}
	} else {
		b.WriteString("- None\n")
	}
	b.WriteString("\n")

	b.WriteString("## Claims\n")
	b.WriteString("| Claim ID | Claim | Verdict | Confidence |\n")
	b.WriteString("| --- | --- | --- | ---: |\n")
	for _, claim := range session.Claims {
		verdictLabel := string(model.VerdictPending)
		confidence := "-"
		if verdict, ok := verdictByClaim[claim.ID]; ok {
			verdictLabel = string(verdict.Verdict)
			confidence = fmt.Sprintf("%.2f", verdict.Confidence)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(claim.ID), escapeCell(claim.Text), verdictLabel, confidence)
	}
	b.WriteString("\n")

	b.WriteString("## Evidence By Claim\n")
	for _, claim := range session.Claims {
		fmt.Fprintf(&b, "### %s\n", claim.ID)
		b.WriteString(claim.Text + "\n")

		snippets := evidenceByClaim[claim.ID]
		if len(snippets) == 0 {
			b.WriteString("- No evidence snippets available.\n\n")
			continue
		}

		for _, snippet := range snippets {
			sourceName := snippet.SourceID
			if name, ok := sourceByID[snippet.SourceID]; ok {
				sourceName = name
			}
			fmt.Fprintf(&b, "- [%s] Source: %s | Relevance: %.3f\n", snippet.ID, sourceName, snippet.RelevanceScore)
			fmt.Fprintf(&b, "  - %s\n", escapeCell(snippet.Snippet))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Release Decision\n")
	fmt.Fprintf(&b, "- Status: %s\n", decision.Status)
	fmt.Fprintf(&b, "- Reason: %s\n", decision.Reason)
	fmt.Fprintf(&b, "- Action: %s. %s\n\n", decision.ActionLabel, decision.ActionNote)

	b.WriteString("## Draft Answer\n")
	b.WriteString(orEmpty(session.DraftAnswer) + "\n\n")

	b.WriteString("## Verified Answer\n")
	verified := session.VerifiedAnswer
	if verified == "" {
		verified = session.DraftAnswer
	}
	b.WriteString(orEmpty(verified) + "\n")

	if r.includeFooter {
		b.WriteString("\n---\n")
		b.WriteString("Generated by ProofStack. Verdicts describe evidence support, not truth.\n")
	}

	return b.String()
}

// RenderSummary prints a short summary to stdout
func (r *Renderer) RenderSummary(session *model.VerificationSession) {
	fmt.Printf("Trust score: %d/100 (%d supported, %d weak, %d unsupported)\n",
		session.TrustReport.TrustScore,
		session.TrustReport.SupportedCount,
		session.TrustReport.WeakCount,
		session.TrustReport.UnsupportedCount)

	for _, risk := range session.TrustReport.TopRisks {
		fmt.Printf("  ! %s\n", risk)
	}

	decision := r.scorer.Decide(session.Claims, session.ClaimVerdicts)
	fmt.Printf("Decision: %s - %s\n", decision.Status, decision.Reason)
}

// escapeCell makes a string safe inside a Markdown table cell
func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func orEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(empty)"
	}
	return value
}
