package model

import "time"

// VerificationSession is the aggregate root binding one verification run:
// the question, its sources, chunks, claims, evidence, verdicts, trust
// report, draft answer, and redlined answer. Created once per request;
// immutable after creation except for being superseded by a newer session.
type VerificationSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Question       string `json:"question"`
	DraftAnswer    string `json:"draftAnswer"`
	VerifiedAnswer string `json:"verifiedAnswer"`
	DiffText       string `json:"diffText,omitempty"`

	Domain         string `json:"domain"`
	Strictness     string `json:"strictness"`
	UseDemoDataset bool   `json:"useDemoDataset"`

	Sources          []SourceDoc       `json:"sources"`
	Chunks           []Chunk           `json:"chunks"`
	Claims           []Claim           `json:"claims"`
	EvidenceSnippets []EvidenceSnippet `json:"evidenceSnippets"`
	ClaimVerdicts    []ClaimVerdict    `json:"claimVerdicts"`
	TrustReport      TrustReport       `json:"trustReport"`
}
