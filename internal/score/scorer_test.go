package score

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/proofstack/internal/model"
)

func verdictFor(claimID string, verdict model.Verdict) model.ClaimVerdict {
	return model.ClaimVerdict{ClaimID: claimID, Verdict: verdict, Confidence: 0.5, Explanation: "r"}
}

func TestScorer_MixedVerdicts(t *testing.T) {
	scorer := NewScorer()

	claims := []model.Claim{
		{ID: "claim-1", Text: "supported claim", Criticality: model.CriticalityLow},
		{ID: "claim-2", Text: "weak claim", Criticality: model.CriticalityMedium},
		{ID: "claim-3", Text: "unsupported high claim", Criticality: model.CriticalityHigh},
	}
	verdicts := []model.ClaimVerdict{
		verdictFor("claim-1", model.VerdictSupported),
		verdictFor("claim-2", model.VerdictWeak),
		verdictFor("claim-3", model.VerdictUnsupported),
	}

	report := scorer.Score(claims, verdicts)

	// raw = 1 + 0.5 + (0 - 2) = -0.5; normalized = (-0.5/3)*50 + 50 = 41.67
	if report.TrustScore != 42 {
		t.Errorf("expected trust score 42, got %d", report.TrustScore)
	}
	if report.SupportedCount != 1 || report.WeakCount != 1 || report.UnsupportedCount != 1 {
		t.Errorf("unexpected counts: %d/%d/%d", report.SupportedCount, report.WeakCount, report.UnsupportedCount)
	}

	if report.ScoreBreakdown == nil {
		t.Fatal("expected score breakdown")
	}
	if math.Abs(report.ScoreBreakdown.RawPoints-(-0.5)) > 1e-9 {
		t.Errorf("expected raw points -0.5, got %f", report.ScoreBreakdown.RawPoints)
	}
	if report.ScoreBreakdown.FinalTrustScore != report.TrustScore {
		t.Errorf("breakdown final %d disagrees with trust score %d", report.ScoreBreakdown.FinalTrustScore, report.TrustScore)
	}
	if report.ScoreBreakdown.Counts.CriticalUnsupported != 1 {
		t.Errorf("expected 1 critical unsupported, got %d", report.ScoreBreakdown.Counts.CriticalUnsupported)
	}
}

func TestScorer_ZeroClaimsBaseline(t *testing.T) {
	report := NewScorer().Score(nil, nil)

	if report.TrustScore != 50 {
		t.Errorf("expected baseline 50 for zero claims, got %d", report.TrustScore)
	}
	if len(report.TopRisks) != 0 {
		t.Errorf("expected no risks, got %v", report.TopRisks)
	}
}

func TestScorer_Bounds(t *testing.T) {
	scorer := NewScorer()

	// All supported pins the score at 100
	var claims []model.Claim
	var verdicts []model.ClaimVerdict
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("claim-%d", i+1)
		claims = append(claims, model.Claim{ID: id, Text: "c", Criticality: model.CriticalityLow})
		verdicts = append(verdicts, verdictFor(id, model.VerdictSupported))
	}
	if got := scorer.Score(claims, verdicts).TrustScore; got != 100 {
		t.Errorf("expected 100 for all supported, got %d", got)
	}

	// All critical unsupported clamps at 0: raw per claim = -2,
	// normalized = -2*50 + 50 = -50.
	verdicts = verdicts[:0]
	for i := range claims {
		claims[i].Criticality = model.CriticalityHigh
		verdicts = append(verdicts, verdictFor(claims[i].ID, model.VerdictUnsupported))
	}
	if got := scorer.Score(claims, verdicts).TrustScore; got != 0 {
		t.Errorf("expected 0 for all critical unsupported, got %d", got)
	}
}

func TestScorer_VerdictMonotonicity(t *testing.T) {
	scorer := NewScorer()
	claims := []model.Claim{{ID: "claim-1", Text: "c", Criticality: model.CriticalityLow}}

	unsupported := scorer.Score(claims, []model.ClaimVerdict{verdictFor("claim-1", model.VerdictUnsupported)}).TrustScore
	weak := scorer.Score(claims, []model.ClaimVerdict{verdictFor("claim-1", model.VerdictWeak)}).TrustScore
	supported := scorer.Score(claims, []model.ClaimVerdict{verdictFor("claim-1", model.VerdictSupported)}).TrustScore

	if !(unsupported < weak && weak < supported) {
		t.Errorf("expected unsupported < weak < supported, got %d/%d/%d", unsupported, weak, supported)
	}
}

func TestScorer_ContradictionPenaltyStacks(t *testing.T) {
	scorer := NewScorer()

	claims := []model.Claim{{ID: "claim-1", Text: "contradicted claim", Criticality: model.CriticalityHigh}}
	verdict := verdictFor("claim-1", model.VerdictUnsupported)
	verdict.ContradictionFound = true

	report := scorer.Score(claims, []model.ClaimVerdict{verdict})

	// base 0, penalties 2 + 0.5 -> net -2.5
	contribution := report.ScoreBreakdown.ClaimContributions[0]
	if math.Abs(contribution.NetPoints-(-2.5)) > 1e-9 {
		t.Errorf("expected net -2.5 with stacked penalties, got %f", contribution.NetPoints)
	}
	if report.ScoreBreakdown.Counts.Contradictions != 1 {
		t.Errorf("expected 1 contradiction, got %d", report.ScoreBreakdown.Counts.Contradictions)
	}
	if !strings.Contains(contribution.Reason, "Contradiction penalty") {
		t.Errorf("expected contradiction penalty in reason, got %q", contribution.Reason)
	}
}

func TestScorer_MissingVerdictCountsAsPending(t *testing.T) {
	scorer := NewScorer()

	claims := []model.Claim{
		{ID: "claim-1", Text: "has verdict", Criticality: model.CriticalityLow},
		{ID: "claim-2", Text: "no verdict", Criticality: model.CriticalityHigh},
	}
	verdicts := []model.ClaimVerdict{verdictFor("claim-1", model.VerdictSupported)}

	report := scorer.Score(claims, verdicts)

	if report.ScoreBreakdown.Counts.Pending != 1 {
		t.Errorf("expected 1 pending, got %d", report.ScoreBreakdown.Counts.Pending)
	}
	// Pending contributes zero but takes no criticality penalty
	if report.ScoreBreakdown.Counts.CriticalUnsupported != 0 {
		t.Errorf("pending must not count as critical unsupported, got %d", report.ScoreBreakdown.Counts.CriticalUnsupported)
	}
	// raw = 1; normalized = (1/2)*50 + 50 = 75
	if report.TrustScore != 75 {
		t.Errorf("expected 75, got %d", report.TrustScore)
	}
}

func TestScorer_TopRisksCappedAndOrdered(t *testing.T) {
	scorer := NewScorer()

	var claims []model.Claim
	var verdicts []model.ClaimVerdict
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("claim-%d", i+1)
		claims = append(claims, model.Claim{ID: id, Text: fmt.Sprintf("risky claim %d", i+1), Criticality: model.CriticalityLow})
		verdicts = append(verdicts, verdictFor(id, model.VerdictUnsupported))
	}

	report := scorer.Score(claims, verdicts)

	if len(report.TopRisks) != 3 {
		t.Fatalf("expected 3 risks, got %d", len(report.TopRisks))
	}
	// Risks surface in claim order
	for i, want := range []string{"risky claim 1", "risky claim 2", "risky claim 3"} {
		if !strings.Contains(report.TopRisks[i], want) {
			t.Errorf("risk %d: expected to mention %q, got %q", i, want, report.TopRisks[i])
		}
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer()

	claims := []model.Claim{
		{ID: "claim-1", Text: "a", Criticality: model.CriticalityHigh},
		{ID: "claim-2", Text: "b", Criticality: model.CriticalityLow},
	}
	verdicts := []model.ClaimVerdict{
		verdictFor("claim-1", model.VerdictUnsupported),
		verdictFor("claim-2", model.VerdictWeak),
	}

	first := scorer.Score(claims, verdicts)
	second := scorer.Score(claims, verdicts)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical reports for identical inputs")
	}
}

func TestScorer_ImpactMetrics(t *testing.T) {
	scorer := NewScorer()

	claims := []model.Claim{
		{ID: "claim-1", Criticality: model.CriticalityLow},
		{ID: "claim-2", Criticality: model.CriticalityMedium},
		{ID: "claim-3", Criticality: model.CriticalityHigh},
	}
	verdicts := []model.ClaimVerdict{
		verdictFor("claim-1", model.VerdictSupported),
		verdictFor("claim-2", model.VerdictWeak),
		verdictFor("claim-3", model.VerdictUnsupported),
	}

	impact := scorer.ImpactMetrics(claims, verdicts)

	if impact.ClaimCount != 3 {
		t.Errorf("expected claim count 3, got %d", impact.ClaimCount)
	}
	if impact.SupportedRatePct != 33 {
		t.Errorf("expected supported rate 33, got %d", impact.SupportedRatePct)
	}
	if impact.CriticalUnsupportedCount != 1 {
		t.Errorf("expected 1 critical unsupported, got %d", impact.CriticalUnsupportedCount)
	}

	// 1.5 + 3*0.6 + 1*0.9 + 1*1.4 + 1*1.1 = 7.2
	if math.Abs(impact.EstimatedReviewMinutes-7.2) > 1e-9 {
		t.Errorf("expected 7.2 review minutes, got %f", impact.EstimatedReviewMinutes)
	}
}

func TestScorer_ImpactMetricsEmpty(t *testing.T) {
	impact := NewScorer().ImpactMetrics(nil, nil)

	if impact.SupportedRatePct != 0 {
		t.Errorf("expected 0%% supported rate for no claims, got %d", impact.SupportedRatePct)
	}
	if math.Abs(impact.EstimatedReviewMinutes-1.5) > 1e-9 {
		t.Errorf("expected base 1.5 minutes, got %f", impact.EstimatedReviewMinutes)
	}
}
