package model

// TrustReport summarizes aggregate claim support for one session.
// Fully derived from {claims, claimVerdicts}; never mutated in place.
type TrustReport struct {
	TrustScore       int      `json:"trustScore"` // 0-100
	SupportedCount   int      `json:"supportedCount"`
	WeakCount        int      `json:"weakCount"`
	UnsupportedCount int      `json:"unsupportedCount"`
	TopRisks         []string `json:"topRisks"`

	// ScoreBreakdown and ImpactMetrics may be absent on sessions persisted
	// before these fields existed; readers recompute them via the scorer.
	ScoreBreakdown *TrustScoreBreakdown `json:"scoreBreakdown,omitempty"`
	ImpactMetrics  *ImpactMetrics       `json:"impactMetrics,omitempty"`
}

// TrustScoreBreakdown is the transparent scoring breakdown: the formula,
// every weight, every count, and one contribution record per claim
type TrustScoreBreakdown struct {
	Formula            string                   `json:"formula"`
	RawPoints          float64                  `json:"rawPoints"`
	NormalizedScore    float64                  `json:"normalizedScore"`
	FinalTrustScore    int                      `json:"finalTrustScore"`
	Weights            ScoreWeights             `json:"weights"`
	Counts             VerdictCounts            `json:"counts"`
	ClaimContributions []ClaimScoreContribution `json:"claimContributions"`
}

// ScoreWeights documents the fixed constants behind the trust score
type ScoreWeights struct {
	Supported                  float64 `json:"supported"`
	Weak                       float64 `json:"weak"`
	Unsupported                float64 `json:"unsupported"`
	Pending                    float64 `json:"pending"`
	ContradictionPenalty       float64 `json:"contradictionPenalty"`
	CriticalUnsupportedPenalty float64 `json:"criticalUnsupportedPenalty"`
	Baseline                   float64 `json:"baseline"`
	ScalePerClaim              float64 `json:"scalePerClaim"`
	DomainMultiplier           float64 `json:"domainMultiplier"`
}

// VerdictCounts tallies verdicts across the session
type VerdictCounts struct {
	ClaimCount          int `json:"claimCount"` // normalization denominator, floored at 1
	Supported           int `json:"supported"`
	Weak                int `json:"weak"`
	Unsupported         int `json:"unsupported"`
	Pending             int `json:"pending"`
	Contradictions      int `json:"contradictions"`
	CriticalUnsupported int `json:"criticalUnsupported"`
}

// ClaimScoreContribution attributes points to a single claim
type ClaimScoreContribution struct {
	ClaimID       string      `json:"claimId"`
	ClaimText     string      `json:"claimText"`
	Verdict       Verdict     `json:"verdict"`
	Criticality   Criticality `json:"criticality"`
	BasePoints    float64     `json:"basePoints"`
	PenaltyPoints float64     `json:"penaltyPoints"`
	NetPoints     float64     `json:"netPoints"` // can go negative
	Reason        string      `json:"reason"`
}

// ImpactMetrics are auxiliary aggregates computed from the same verdict set
type ImpactMetrics struct {
	ClaimCount               int     `json:"claimCount"`
	SupportedRatePct         int     `json:"supportedRatePct"`
	CriticalUnsupportedCount int     `json:"criticalUnsupportedCount"`
	EstimatedReviewMinutes   float64 `json:"estimatedReviewMinutes"`
	ReviewTimeFormula        string  `json:"reviewTimeFormula"`
}
