package model

// EvidenceSnippet is a retrieved chunk of source text judged relevant to one
// claim. Lifetime is tied to the retrieval call that produced it; the ID is
// derived from the claim ID and the snippet's rank.
type EvidenceSnippet struct {
	ID             string  `json:"id"`
	ClaimID        string  `json:"claimId"`
	SourceID       string  `json:"sourceId"`
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevanceScore"` // in [0,1]
}

// ClaimVerdict is the reconciled judgment for one claim. Exactly one verdict
// exists per claim once verification has run.
type ClaimVerdict struct {
	ClaimID            string   `json:"claimId"`
	Verdict            Verdict  `json:"verdict"`
	Confidence         float64  `json:"confidence"` // in [0,1]
	Explanation        string   `json:"explanation"`
	EvidenceSnippetIDs []string `json:"evidenceSnippetIds"`

	// ContradictionFound is an externally supplied annotation. The core
	// pipeline never computes it.
	ContradictionFound bool `json:"contradictionFound,omitempty"`
}
