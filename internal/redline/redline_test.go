package redline

import (
	"strings"
	"testing"

	"github.com/ppiankov/proofstack/internal/model"
)

func TestRedline_SupportedClaimWithCitation(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Text: "Credential stuffing occurred"}}
	verdicts := []model.ClaimVerdict{{
		ClaimID:            "claim-1",
		Verdict:            model.VerdictSupported,
		EvidenceSnippetIDs: []string{"claim-1-evidence-1"},
	}}
	snippets := []model.EvidenceSnippet{{ID: "claim-1-evidence-1", ClaimID: "claim-1"}}

	out := Redline("draft", claims, verdicts, snippets)

	if !strings.Contains(out.VerifiedText, "Evidence-supported points:") {
		t.Error("expected supported section header")
	}
	if !strings.Contains(out.VerifiedText, "- Credential stuffing occurred. [E1]") {
		t.Errorf("expected cited supported line, got:\n%s", out.VerifiedText)
	}
	if !strings.Contains(out.VerifiedText, "Evidence index:") {
		t.Error("expected evidence index")
	}
	if !strings.Contains(out.VerifiedText, "[E1] = claim-1-evidence-1") {
		t.Errorf("expected index entry, got:\n%s", out.VerifiedText)
	}
}

func TestRedline_SectionsByVerdict(t *testing.T) {
	claims := []model.Claim{
		{ID: "claim-1", Text: "Supported one"},
		{ID: "claim-2", Text: "Weak one"},
		{ID: "claim-3", Text: "Unsupported one"},
	}
	verdicts := []model.ClaimVerdict{
		{ClaimID: "claim-1", Verdict: model.VerdictSupported},
		{ClaimID: "claim-2", Verdict: model.VerdictWeak},
		{ClaimID: "claim-3", Verdict: model.VerdictUnsupported},
	}

	out := Redline("draft", claims, verdicts, nil)

	if !strings.Contains(out.VerifiedText, "- Supported one.") {
		t.Error("expected supported line")
	}
	if !strings.Contains(out.VerifiedText, "Qualified points (weak evidence):") {
		t.Error("expected weak section header")
	}
	if !strings.Contains(out.VerifiedText, "- Likely: Weak one. (insufficient evidence for full confidence).") {
		t.Errorf("expected weak line, got:\n%s", out.VerifiedText)
	}
	if !strings.Contains(out.VerifiedText, "Uncertain or unsupported points:") {
		t.Error("expected unsupported section header")
	}
	if !strings.Contains(out.VerifiedText, "- Uncertain: Unsupported one. (not supported by available evidence).") {
		t.Errorf("expected unsupported line, got:\n%s", out.VerifiedText)
	}
}

func TestRedline_NoSupportedClaimsNotice(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Text: "Something uncertain"}}
	verdicts := []model.ClaimVerdict{{ClaimID: "claim-1", Verdict: model.VerdictUnsupported}}

	out := Redline("draft", claims, verdicts, nil)

	if !strings.Contains(out.VerifiedText, "No claims are currently evidence-supported enough for a definitive verified answer.") {
		t.Errorf("expected fallback notice, got:\n%s", out.VerifiedText)
	}
	if strings.Contains(out.VerifiedText, "Evidence-supported points:") {
		t.Error("supported header must not appear when nothing is supported")
	}
}

func TestRedline_LabelsStableAcrossReuse(t *testing.T) {
	// Two claims citing the same snippet share one label
	claims := []model.Claim{
		{ID: "claim-1", Text: "First"},
		{ID: "claim-2", Text: "Second"},
	}
	verdicts := []model.ClaimVerdict{
		{ClaimID: "claim-1", Verdict: model.VerdictSupported, EvidenceSnippetIDs: []string{"shared-evidence-1"}},
		{ClaimID: "claim-2", Verdict: model.VerdictSupported, EvidenceSnippetIDs: []string{"shared-evidence-1", "other-evidence-1"}},
	}
	snippets := []model.EvidenceSnippet{
		{ID: "shared-evidence-1"},
		{ID: "other-evidence-1"},
	}

	out := Redline("draft", claims, verdicts, snippets)

	if strings.Count(out.VerifiedText, "[E1] = shared-evidence-1") != 1 {
		t.Errorf("expected exactly one index entry for shared snippet, got:\n%s", out.VerifiedText)
	}
	if !strings.Contains(out.VerifiedText, "- First. [E1]") {
		t.Errorf("expected first claim to cite [E1], got:\n%s", out.VerifiedText)
	}
	if !strings.Contains(out.VerifiedText, "- Second. [E1] [E2]") {
		t.Errorf("expected second claim to reuse [E1] and allocate [E2], got:\n%s", out.VerifiedText)
	}
}

func TestRedline_UnknownCitationsSkipped(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Text: "Cited nothing real"}}
	verdicts := []model.ClaimVerdict{{
		ClaimID:            "claim-1",
		Verdict:            model.VerdictSupported,
		EvidenceSnippetIDs: []string{"nonexistent-evidence-9"},
	}}

	out := Redline("draft", claims, verdicts, nil)

	if strings.Contains(out.VerifiedText, "[E1]") {
		t.Errorf("expected no labels for unknown snippet IDs, got:\n%s", out.VerifiedText)
	}
	if strings.Contains(out.VerifiedText, "Evidence index:") {
		t.Error("expected no evidence index when nothing was labeled")
	}
}

func TestRedline_SentenceTermination(t *testing.T) {
	claims := []model.Claim{
		{ID: "claim-1", Text: "Already terminated!"},
		{ID: "claim-2", Text: "Needs a period"},
	}
	verdicts := []model.ClaimVerdict{
		{ClaimID: "claim-1", Verdict: model.VerdictSupported},
		{ClaimID: "claim-2", Verdict: model.VerdictSupported},
	}

	out := Redline("draft", claims, verdicts, nil)

	if !strings.Contains(out.VerifiedText, "- Already terminated!") {
		t.Error("existing terminator must be kept")
	}
	if strings.Contains(out.VerifiedText, "terminated!.") {
		t.Error("terminator must not be doubled")
	}
	if !strings.Contains(out.VerifiedText, "- Needs a period.") {
		t.Error("missing terminator must be added")
	}
}

func TestRedline_DiffText(t *testing.T) {
	out := Redline("12345", nil, nil, nil)

	if !strings.Contains(out.DiffText, "Draft length: 5 chars") {
		t.Errorf("unexpected diff text: %q", out.DiffText)
	}
	if !strings.Contains(out.DiffText, "Verified length:") {
		t.Errorf("unexpected diff text: %q", out.DiffText)
	}
}

func TestRedline_PendingRendersAsUncertain(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Text: "No verdict recorded"}}

	out := Redline("draft", claims, nil, nil)

	if !strings.Contains(out.VerifiedText, "- Uncertain: No verdict recorded.") {
		t.Errorf("expected pending claim rendered as uncertain, got:\n%s", out.VerifiedText)
	}
}
