package score

import (
	"fmt"

	"github.com/ppiankov/proofstack/internal/model"
)

// DecisionStatus is the release gate for a verified answer
type DecisionStatus string

const (
	DecisionHold DecisionStatus = "hold"
	DecisionSafe DecisionStatus = "safe"
)

// ReportDecision gates external sharing of a verified answer. Any
// unsupported claim or any high-criticality claim on weak evidence holds
// the report for analyst review.
type ReportDecision struct {
	Status            DecisionStatus `json:"status"`
	UnsupportedCount  int            `json:"unsupportedCount"`
	CriticalWeakCount int            `json:"criticalWeakCount"`
	Reason            string         `json:"reason"`
	ActionLabel       string         `json:"actionLabel"`
	ActionNote        string         `json:"actionNote"`
}

const (
	holdActionLabel = "Review blocking claims"
	holdActionNote  = "Do not publish externally until blocking claims are resolved."
	safeActionLabel = "Open claims review"
	safeActionNote  = "Proceed with sharing, then run a final analyst spot-check for critical actions."
)

// Decide computes the hold/safe decision from the same verdict set the
// trust score reads
func (s *Scorer) Decide(claims []model.Claim, verdicts []model.ClaimVerdict) ReportDecision {
	verdictByClaim := make(map[string]model.ClaimVerdict, len(verdicts))
	for _, verdict := range verdicts {
		verdictByClaim[verdict.ClaimID] = verdict
	}

	var unsupported, criticalWeak int
	for _, claim := range claims {
		verdict, ok := verdictByClaim[claim.ID]
		if !ok {
			continue
		}
		switch verdict.Verdict {
		case model.VerdictUnsupported:
			unsupported++
		case model.VerdictWeak:
			if claim.Criticality == model.CriticalityHigh {
				criticalWeak++
			}
		}
	}

	decision := ReportDecision{
		UnsupportedCount:  unsupported,
		CriticalWeakCount: criticalWeak,
	}

	switch {
	case unsupported > 0 && criticalWeak > 0:
		decision.Status = DecisionHold
		decision.Reason = fmt.Sprintf("%d unsupported claim(s) and %d high-critical weak claim(s) require analyst review.", unsupported, criticalWeak)
		decision.ActionLabel = holdActionLabel
		decision.ActionNote = holdActionNote

	case unsupported > 0:
		decision.Status = DecisionHold
		decision.Reason = fmt.Sprintf("%d unsupported claim(s) block safe sharing until reviewed.", unsupported)
		decision.ActionLabel = holdActionLabel
		decision.ActionNote = holdActionNote

	case criticalWeak > 0:
		decision.Status = DecisionHold
		decision.Reason = fmt.Sprintf("%d high-critical weak claim(s) need manual validation before release.", criticalWeak)
		decision.ActionLabel = holdActionLabel
		decision.ActionNote = holdActionNote

	default:
		decision.Status = DecisionSafe
		decision.Reason = "No unsupported claims and no high-critical weak claims detected in this run."
		decision.ActionLabel = safeActionLabel
		decision.ActionNote = safeActionNote
	}

	return decision
}
