package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/proofstack/internal/model"
)

// Fixed scoring constants. All of them surface in the breakdown's weights
// table so every point in the final score is attributable.
const (
	BaselineScore              = 50.0
	ScalePerClaim              = 50.0
	DomainMultiplier           = 1.0
	ContradictionPenalty       = 0.5
	CriticalUnsupportedPenalty = 2.0

	maxTopRisks = 3
)

const (
	scoreFormula      = "final = clamp(0,100, round((((rawPoints / claimCount) * 50) + 50) * 1))"
	reviewTimeFormula = "minutes = 1.5 + (claimCount*0.6) + (weak*0.9) + (unsupported*1.4) + (criticalUnsupported*1.1)"
)

// Scorer aggregates claim verdicts into a trust report. Pure and
// deterministic: recomputing from the same inputs always yields the same
// report, field for field.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// basePoints returns the verdict's base contribution
func basePoints(verdict model.Verdict) float64 {
	switch verdict {
	case model.VerdictSupported:
		return 1
	case model.VerdictWeak:
		return 0.5
	case model.VerdictUnsupported, model.VerdictPending:
		return 0
	default:
		return 0
	}
}

// Score computes the 0-100 trust score with full per-claim attribution and
// auxiliary impact metrics. Claims without a verdict record count as pending.
func (s *Scorer) Score(claims []model.Claim, verdicts []model.ClaimVerdict) model.TrustReport {
	verdictByClaim := make(map[string]model.ClaimVerdict, len(verdicts))
	for _, verdict := range verdicts {
		verdictByClaim[verdict.ClaimID] = verdict
	}

	// Normalization denominator floors at 1 so zero claims still evaluate
	// to the baseline score.
	normalizationCount := len(claims)
	if normalizationCount < 1 {
		normalizationCount = 1
	}

	counts := model.VerdictCounts{ClaimCount: normalizationCount}
	contributions := make([]model.ClaimScoreContribution, 0, len(claims))
	var risks []string
	rawPoints := 0.0

	for _, claim := range claims {
		verdict, hasVerdict := verdictByClaim[claim.ID]
		status := model.VerdictPending
		contradiction := false
		if hasVerdict {
			status = verdict.Verdict
			contradiction = verdict.ContradictionFound
		}

		base := basePoints(status)
		penalty := 0.0
		reason := fmt.Sprintf("Verdict %q contributes %.2f point(s).", status, base)

		switch status {
		case model.VerdictSupported:
			counts.Supported++
		case model.VerdictWeak:
			counts.Weak++
		case model.VerdictUnsupported:
			counts.Unsupported++
		default:
			counts.Pending++
		}

		if status == model.VerdictUnsupported && claim.Criticality == model.CriticalityHigh {
			counts.CriticalUnsupported++
			penalty += CriticalUnsupportedPenalty
			reason += fmt.Sprintf(" High criticality unsupported penalty: -%.2f.", CriticalUnsupportedPenalty)
			risks = append(risks, "High-criticality unsupported claim: "+claim.Text)
		}

		if contradiction {
			counts.Contradictions++
			penalty += ContradictionPenalty
			reason += fmt.Sprintf(" Contradiction penalty: -%.2f.", ContradictionPenalty)
			risks = append(risks, "Contradiction detected for claim: "+claim.Text)
		}

		if status == model.VerdictWeak {
			risks = append(risks, "Weak evidence claim: "+claim.Text)
		}

		if status == model.VerdictUnsupported && claim.Criticality != model.CriticalityHigh {
			risks = append(risks, "Unsupported claim: "+claim.Text)
		}

		net := base - penalty
		rawPoints += net

		contributions = append(contributions, model.ClaimScoreContribution{
			ClaimID:       claim.ID,
			ClaimText:     claim.Text,
			Verdict:       status,
			Criticality:   claim.Criticality,
			BasePoints:    base,
			PenaltyPoints: penalty,
			NetPoints:     net,
			Reason:        reason,
		})
	}

	normalized := ((rawPoints/float64(normalizationCount))*ScalePerClaim + BaselineScore) * DomainMultiplier
	final := int(math.Round(math.Max(0, math.Min(100, normalized))))

	if len(risks) > maxTopRisks {
		risks = risks[:maxTopRisks]
	}
	if risks == nil {
		risks = []string{}
	}

	breakdown := model.TrustScoreBreakdown{
		Formula:         scoreFormula,
		RawPoints:       rawPoints,
		NormalizedScore: normalized,
		FinalTrustScore: final,
		Weights: model.ScoreWeights{
			Supported:                  1,
			Weak:                       0.5,
			Unsupported:                0,
			Pending:                    0,
			ContradictionPenalty:       ContradictionPenalty,
			CriticalUnsupportedPenalty: CriticalUnsupportedPenalty,
			Baseline:                   BaselineScore,
			ScalePerClaim:              ScalePerClaim,
			DomainMultiplier:           DomainMultiplier,
		},
		Counts:             counts,
		ClaimContributions: contributions,
	}

	impact := s.ImpactMetrics(claims, verdicts)

	return model.TrustReport{
		TrustScore:       final,
		SupportedCount:   counts.Supported,
		WeakCount:        counts.Weak,
		UnsupportedCount: counts.Unsupported,
		TopRisks:         risks,
		ScoreBreakdown:   &breakdown,
		ImpactMetrics:    &impact,
	}
}

// ImpactMetrics computes the auxiliary aggregates from the same verdict set.
// Independent of Score so report readers can recompute it for sessions
// persisted before the field existed.
func (s *Scorer) ImpactMetrics(claims []model.Claim, verdicts []model.ClaimVerdict) model.ImpactMetrics {
	verdictByClaim := make(map[string]model.ClaimVerdict, len(verdicts))
	for _, verdict := range verdicts {
		verdictByClaim[verdict.ClaimID] = verdict
	}

	var supported, weak, unsupported, criticalUnsupported int
	for _, claim := range claims {
		status := model.VerdictPending
		if verdict, ok := verdictByClaim[claim.ID]; ok {
			status = verdict.Verdict
		}

		switch status {
		case model.VerdictSupported:
			supported++
		case model.VerdictWeak:
			weak++
		case model.VerdictUnsupported:
			unsupported++
			if claim.Criticality == model.CriticalityHigh {
				criticalUnsupported++
			}
		}
	}

	claimCount := len(claims)
	supportedRate := 0
	if claimCount > 0 {
		supportedRate = int(math.Round(float64(supported) / float64(claimCount) * 100))
	}

	// Fixed linear estimator, not learned.
	minutes := 1.5 + float64(claimCount)*0.6 + float64(weak)*0.9 + float64(unsupported)*1.4 + float64(criticalUnsupported)*1.1

	return model.ImpactMetrics{
		ClaimCount:               claimCount,
		SupportedRatePct:         supportedRate,
		CriticalUnsupportedCount: criticalUnsupported,
		EstimatedReviewMinutes:   math.Round(minutes*10) / 10,
		ReviewTimeFormula:        reviewTimeFormula,
	}
}
