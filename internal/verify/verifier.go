package verify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ppiankov/proofstack/internal/llm"
	"github.com/ppiankov/proofstack/internal/model"
	"github.com/ppiankov/proofstack/internal/worker"
)

// Fallback thresholds applied to the maximum relevance score among the
// retrieved snippets when the oracle is unavailable or returns an invalid
// response
const (
	fallbackSupportedThreshold = 0.55
	fallbackWeakThreshold      = 0.30
	fallbackMinConfidence      = 0.20
	fallbackMaxConfidence      = 0.85

	maxCitedEvidenceIDs = 3
)

const fallbackReason = "Deterministic fallback: verdict derived from the maximum evidence relevance score because no valid oracle judgment was available."

const verifySystemMessage = "You are a strict claim verification assistant. You only judge whether evidence supports a claim; you never assert truth beyond the provided snippets."

// Verifier reconciles claims against their evidence snippets into verdicts.
// It wraps the judgment oracle with strict output validation and a
// deterministic numeric fallback; it never raises an error to its caller.
type Verifier struct {
	judge   llm.Judge // nil means fallback-only operation
	workers int
}

// NewVerifier creates a verifier. A nil judge disables oracle calls; all
// claims then take the deterministic fallback path. workers <= 0 means one
// worker per claim so every oracle call is in flight simultaneously.
func NewVerifier(judge llm.Judge, workers int) *Verifier {
	return &Verifier{
		judge:   judge,
		workers: workers,
	}
}

// oracleVerdict is the strict response shape expected from the oracle.
// Confidence is a pointer so a missing field is distinguishable from zero;
// a mis-typed field fails unmarshaling, which counts as invalid.
type oracleVerdict struct {
	Verdict     string   `json:"verdict"`
	Confidence  *float64 `json:"confidence"`
	Reason      string   `json:"reason"`
	EvidenceIDs []string `json:"evidenceIds"`
}

// verifyJob verifies one claim; it carries its input index so results can be
// reassembled in claim order regardless of completion order
type verifyJob struct {
	index    int
	claim    model.Claim
	evidence []model.EvidenceSnippet
	verifier *Verifier
}

// verifyResult pairs a verdict with its input index
type verifyResult struct {
	index   int
	verdict model.ClaimVerdict
}

// GetError always returns nil: verification degrades to the fallback
// instead of failing
func (r *verifyResult) GetError() error { return nil }

// Execute runs the per-claim state machine
func (j *verifyJob) Execute(ctx context.Context) worker.Result {
	return &verifyResult{
		index:   j.index,
		verdict: j.verifier.verifyOne(ctx, j.claim, j.evidence),
	}
}

// Verify produces exactly one verdict per claim, in input claim order.
// Claims are verified concurrently; each verification only reads its own
// evidence slice, so the fan-out touches no shared mutable state.
func (v *Verifier) Verify(ctx context.Context, claims []model.Claim, evidenceByClaim map[string][]model.EvidenceSnippet) []model.ClaimVerdict {
	if len(claims) == 0 {
		return []model.ClaimVerdict{}
	}

	workers := v.workers
	if workers <= 0 || workers > len(claims) {
		workers = len(claims)
	}

	// The whole batch is submitted before any result is collected, so the
	// pool's queues must hold every job.
	pool := worker.NewPoolWithCapacity(workers, len(claims))
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&verifyJob{
			index:    i,
			claim:    claim,
			evidence: evidenceByClaim[claim.ID],
			verifier: v,
		})
	}

	verdicts := make([]model.ClaimVerdict, len(claims))
	for _, result := range pool.Wait() {
		r := result.(*verifyResult)
		verdicts[r.index] = r.verdict
	}

	return verdicts
}

// verifyOne reconciles a single claim. Terminal in all branches: oracle
// timeouts, network errors, and malformed JSON all degrade to the fallback.
func (v *Verifier) verifyOne(ctx context.Context, claim model.Claim, evidence []model.EvidenceSnippet) model.ClaimVerdict {
	// Zero evidence is a defined terminal state, not an error. No oracle call.
	if len(evidence) == 0 {
		return model.ClaimVerdict{
			ClaimID:            claim.ID,
			Verdict:            model.VerdictUnsupported,
			Confidence:         0,
			Explanation:        "no evidence retrieved",
			EvidenceSnippetIDs: []string{},
		}
	}

	if v.judge == nil {
		return v.fallbackVerdict(claim, evidence)
	}

	response, err := v.judge.Judge(ctx, llm.JudgeRequest{
		System:   verifySystemMessage,
		Prompt:   BuildVerifyPrompt(claim, evidence),
		JSONMode: true,
	})
	if err != nil {
		return v.fallbackVerdict(claim, evidence)
	}

	verdict, ok := v.validateResponse(claim, evidence, response)
	if !ok {
		return v.fallbackVerdict(claim, evidence)
	}

	return verdict
}

// validateResponse enforces the strict oracle output contract: a known
// verdict label, numeric confidence, non-empty reason, and a string array of
// evidence IDs. Cited IDs are restricted to the retrieved set and capped.
func (v *Verifier) validateResponse(claim model.Claim, evidence []model.EvidenceSnippet, response string) (model.ClaimVerdict, bool) {
	var parsed oracleVerdict
	if err := json.Unmarshal([]byte(extractJSONObject(response)), &parsed); err != nil {
		return model.ClaimVerdict{}, false
	}

	verdict := model.Verdict(strings.ToLower(strings.TrimSpace(parsed.Verdict)))
	if !verdict.IsValid() {
		return model.ClaimVerdict{}, false
	}

	if parsed.Confidence == nil {
		return model.ClaimVerdict{}, false
	}
	confidence := clamp(*parsed.Confidence, 0, 1)

	reason := strings.TrimSpace(parsed.Reason)
	if reason == "" {
		return model.ClaimVerdict{}, false
	}

	if parsed.EvidenceIDs == nil {
		return model.ClaimVerdict{}, false
	}

	// Restrict to IDs actually retrieved for this claim: the oracle may
	// hallucinate snippet IDs that were never in the prompt.
	retrieved := make(map[string]struct{}, len(evidence))
	for _, snippet := range evidence {
		retrieved[snippet.ID] = struct{}{}
	}

	cited := make([]string, 0, maxCitedEvidenceIDs)
	for _, id := range parsed.EvidenceIDs {
		if _, ok := retrieved[id]; !ok {
			continue
		}
		cited = append(cited, id)
		if len(cited) == maxCitedEvidenceIDs {
			break
		}
	}

	return model.ClaimVerdict{
		ClaimID:            claim.ID,
		Verdict:            verdict,
		Confidence:         confidence,
		Explanation:        reason,
		EvidenceSnippetIDs: cited,
	}, true
}

// fallbackVerdict derives a verdict purely from the maximum relevance score
// among the retrieved snippets
func (v *Verifier) fallbackVerdict(claim model.Claim, evidence []model.EvidenceSnippet) model.ClaimVerdict {
	maxScore := 0.0
	ids := make([]string, 0, len(evidence))
	for _, snippet := range evidence {
		if snippet.RelevanceScore > maxScore {
			maxScore = snippet.RelevanceScore
		}
		ids = append(ids, snippet.ID)
	}

	verdict := model.VerdictUnsupported
	switch {
	case maxScore >= fallbackSupportedThreshold:
		verdict = model.VerdictSupported
	case maxScore >= fallbackWeakThreshold:
		verdict = model.VerdictWeak
	}

	return model.ClaimVerdict{
		ClaimID:            claim.ID,
		Verdict:            verdict,
		Confidence:         clamp(maxScore, fallbackMinConfidence, fallbackMaxConfidence),
		Explanation:        fallbackReason,
		EvidenceSnippetIDs: ids,
	}
}

// extractJSONObject pulls the first {...} block out of the response in case
// the oracle wrapped the object in prose or a code fence
func extractJSONObject(response string) string {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return response
	}
	return response[start : end+1]
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
