package model

// Claim represents an atomic, independently verifiable factual statement
// extracted from a draft answer
type Claim struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	ClaimType   ClaimType   `json:"claimType"`
	Criticality Criticality `json:"criticality"`
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeFact           ClaimType = "fact"           // Plain factual assertion
	ClaimTypeNumber         ClaimType = "number"         // Quantitative claim
	ClaimTypeRecommendation ClaimType = "recommendation" // Suggested action
)

// IsValid reports whether t is one of the known claim types
func (t ClaimType) IsValid() bool {
	switch t {
	case ClaimTypeFact, ClaimTypeNumber, ClaimTypeRecommendation:
		return true
	}
	return false
}

// Criticality is the claim-level severity tag used to weight penalties
type Criticality string

const (
	CriticalityLow    Criticality = "low"
	CriticalityMedium Criticality = "medium"
	CriticalityHigh   Criticality = "high"
)

// IsValid reports whether c is one of the known criticality levels
func (c Criticality) IsValid() bool {
	switch c {
	case CriticalityLow, CriticalityMedium, CriticalityHigh:
		return true
	}
	return false
}

// Verdict is the closed judgment set assigned to a claim given its evidence.
// "pending" is the implicit default when no verdict record exists yet and is
// never persisted as such.
type Verdict string

const (
	VerdictSupported   Verdict = "supported"
	VerdictWeak        Verdict = "weak"
	VerdictUnsupported Verdict = "unsupported"
	VerdictPending     Verdict = "pending"
)

// IsValid reports whether v is a verdict an oracle may return.
// Pending is deliberately excluded: it is a default, not a judgment.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictSupported, VerdictWeak, VerdictUnsupported:
		return true
	}
	return false
}
