package score

import (
	"strings"
	"testing"

	"github.com/ppiankov/proofstack/internal/model"
)

func TestDecide_Safe(t *testing.T) {
	claims := []model.Claim{
		{ID: "claim-1", Criticality: model.CriticalityHigh},
		{ID: "claim-2", Criticality: model.CriticalityLow},
	}
	verdicts := []model.ClaimVerdict{
		verdictFor("claim-1", model.VerdictSupported),
		verdictFor("claim-2", model.VerdictWeak), // weak but not high-critical
	}

	decision := NewScorer().Decide(claims, verdicts)

	if decision.Status != DecisionSafe {
		t.Errorf("expected safe, got %q", decision.Status)
	}
	if decision.UnsupportedCount != 0 || decision.CriticalWeakCount != 0 {
		t.Errorf("unexpected counts: %d/%d", decision.UnsupportedCount, decision.CriticalWeakCount)
	}
	if !strings.Contains(decision.ActionNote, "Proceed with sharing") {
		t.Errorf("unexpected action note: %q", decision.ActionNote)
	}
}

func TestDecide_HoldOnUnsupported(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Criticality: model.CriticalityLow}}
	verdicts := []model.ClaimVerdict{verdictFor("claim-1", model.VerdictUnsupported)}

	decision := NewScorer().Decide(claims, verdicts)

	if decision.Status != DecisionHold {
		t.Errorf("expected hold, got %q", decision.Status)
	}
	if decision.UnsupportedCount != 1 {
		t.Errorf("expected 1 unsupported, got %d", decision.UnsupportedCount)
	}
	if !strings.Contains(decision.Reason, "block safe sharing") {
		t.Errorf("unexpected reason: %q", decision.Reason)
	}
}

func TestDecide_HoldOnCriticalWeak(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Criticality: model.CriticalityHigh}}
	verdicts := []model.ClaimVerdict{verdictFor("claim-1", model.VerdictWeak)}

	decision := NewScorer().Decide(claims, verdicts)

	if decision.Status != DecisionHold {
		t.Errorf("expected hold, got %q", decision.Status)
	}
	if decision.CriticalWeakCount != 1 {
		t.Errorf("expected 1 critical weak, got %d", decision.CriticalWeakCount)
	}
	if !strings.Contains(decision.Reason, "manual validation") {
		t.Errorf("unexpected reason: %q", decision.Reason)
	}
}

func TestDecide_HoldOnBoth(t *testing.T) {
	claims := []model.Claim{
		{ID: "claim-1", Criticality: model.CriticalityHigh},
		{ID: "claim-2", Criticality: model.CriticalityLow},
	}
	verdicts := []model.ClaimVerdict{
		verdictFor("claim-1", model.VerdictWeak),
		verdictFor("claim-2", model.VerdictUnsupported),
	}

	decision := NewScorer().Decide(claims, verdicts)

	if decision.Status != DecisionHold {
		t.Errorf("expected hold, got %q", decision.Status)
	}
	if !strings.Contains(decision.Reason, "1 unsupported claim(s) and 1 high-critical weak claim(s)") {
		t.Errorf("unexpected reason: %q", decision.Reason)
	}
}

func TestDecide_PendingClaimsIgnored(t *testing.T) {
	claims := []model.Claim{{ID: "claim-1", Criticality: model.CriticalityHigh}}

	decision := NewScorer().Decide(claims, nil)

	if decision.Status != DecisionSafe {
		t.Errorf("pending claims must not hold the report, got %q", decision.Status)
	}
}
