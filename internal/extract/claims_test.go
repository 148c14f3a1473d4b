package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/proofstack/internal/llm"
	"github.com/ppiankov/proofstack/internal/model"
)

// fakeJudge implements llm.Judge with scripted responses
type fakeJudge struct {
	responses []string
	errs      []error
	calls     int
}

func (j *fakeJudge) Name() string { return "fake" }

func (j *fakeJudge) Judge(ctx context.Context, req llm.JudgeRequest) (string, error) {
	i := j.calls
	j.calls++
	var response string
	var err error
	if i < len(j.responses) {
		response = j.responses[i]
	}
	if i < len(j.errs) {
		err = j.errs[i]
	}
	return response, err
}

func (j *fakeJudge) IsAvailable(ctx context.Context) bool { return true }

func TestClaimExtractor_OraclePath(t *testing.T) {
	judge := &fakeJudge{responses: []string{
		`{"claims": [
			{"text": "The breach was contained", "claimType": "fact", "criticality": "high"},
			{"text": "Response took 20 minutes", "claimType": "number", "criticality": "medium"}
		]}`,
	}}

	extractor := NewClaimExtractor(judge, 12)
	claims := extractor.Extract(context.Background(), "draft text")

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].ID != "claim-1" || claims[1].ID != "claim-2" {
		t.Errorf("unexpected claim IDs: %q, %q", claims[0].ID, claims[1].ID)
	}
	if claims[0].ClaimType != model.ClaimTypeFact || claims[0].Criticality != model.CriticalityHigh {
		t.Errorf("unexpected first claim classification: %s/%s", claims[0].ClaimType, claims[0].Criticality)
	}
	if claims[1].ClaimType != model.ClaimTypeNumber {
		t.Errorf("expected number type, got %s", claims[1].ClaimType)
	}
}

func TestClaimExtractor_OracleRetriesOnceThenFallsBack(t *testing.T) {
	judge := &fakeJudge{
		responses: []string{"garbage", "more garbage"},
	}

	extractor := NewClaimExtractor(judge, 12)
	claims := extractor.Extract(context.Background(), "The system blocked the attack within minutes. Customers were notified the same day.")

	if judge.calls != 2 {
		t.Errorf("expected exactly 2 oracle attempts, got %d", judge.calls)
	}
	if len(claims) != 2 {
		t.Fatalf("expected heuristic fallback claims, got %d", len(claims))
	}
}

func TestClaimExtractor_OracleErrorFallsBack(t *testing.T) {
	judge := &fakeJudge{errs: []error{errors.New("timeout"), errors.New("timeout")}}

	extractor := NewClaimExtractor(judge, 12)
	claims := extractor.Extract(context.Background(), "Credential stuffing was detected on the login endpoint.")

	if len(claims) == 0 {
		t.Fatal("expected heuristic claims after oracle errors")
	}
}

func TestClaimExtractor_InvalidOracleLabelsRejected(t *testing.T) {
	// An unknown claimType invalidates the whole response
	judge := &fakeJudge{responses: []string{
		`{"claims": [{"text": "x", "claimType": "opinion", "criticality": "low"}]}`,
		`{"claims": [{"text": "x", "claimType": "fact", "criticality": "severe"}]}`,
	}}

	extractor := NewClaimExtractor(judge, 12)
	extractor.Extract(context.Background(), "A plain sentence long enough to survive the splitter.")

	if judge.calls != 2 {
		t.Errorf("expected both invalid responses consumed, got %d calls", judge.calls)
	}
}

func TestClaimExtractor_HeuristicOnly(t *testing.T) {
	extractor := NewClaimExtractor(nil, 12)

	draft := "Attackers used stolen credentials against the login endpoint. " +
		"The security team should enable rate limiting on all endpoints. " +
		"Roughly 4200 accounts were affected by the incident."

	claims := extractor.Extract(context.Background(), draft)

	if len(claims) != 3 {
		t.Fatalf("expected 3 claims, got %d", len(claims))
	}

	if claims[0].Criticality != model.CriticalityHigh {
		t.Errorf("expected high criticality for credential sentence, got %s", claims[0].Criticality)
	}
	if claims[1].ClaimType != model.ClaimTypeRecommendation {
		t.Errorf("expected recommendation type, got %s", claims[1].ClaimType)
	}
	if claims[2].ClaimType != model.ClaimTypeNumber {
		t.Errorf("expected number type, got %s", claims[2].ClaimType)
	}
}

func TestClaimExtractor_MaxClaimsCap(t *testing.T) {
	extractor := NewClaimExtractor(nil, 3)

	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString(strings.Repeat("word ", 6))
		b.WriteString("sentence number ")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString(". ")
	}

	claims := extractor.Extract(context.Background(), b.String())

	if len(claims) > 3 {
		t.Errorf("expected at most 3 claims, got %d", len(claims))
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First long enough sentence goes here. Second long enough sentence here too! Tiny. Third one ends with a question mark?")

	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences (tiny one dropped), got %d: %v", len(sentences), sentences)
	}
	if !strings.HasPrefix(sentences[0], "First") {
		t.Errorf("unexpected first sentence: %q", sentences[0])
	}
}

func TestDedupe(t *testing.T) {
	unique := dedupe([]string{"Same sentence here.", "same sentence here.", "Different sentence."})

	if len(unique) != 2 {
		t.Errorf("expected 2 unique sentences, got %d", len(unique))
	}
	if unique[0] != "Same sentence here." {
		t.Errorf("expected first occurrence kept, got %q", unique[0])
	}
}

func TestDraftWriter_TemplateFallback(t *testing.T) {
	writer := NewDraftWriter(nil)

	sources := []model.SourceDoc{{
		ID:       "source-a",
		FileName: "incident.md",
		Content:  "The incident began at 09:14 UTC on the login endpoint. Rate limiting was enabled twenty minutes later. A third sentence that should not appear in the draft.",
	}}

	draft := writer.Draft(context.Background(), "What happened?", sources)

	if !strings.Contains(draft, "Draft answer to: What happened?") {
		t.Errorf("expected question header in template draft, got %q", draft)
	}
	if !strings.Contains(draft, "09:14 UTC") {
		t.Errorf("expected first source sentence in draft, got %q", draft)
	}
	if strings.Contains(draft, "third sentence") {
		t.Errorf("expected only leading sentences in draft, got %q", draft)
	}
}

func TestDraftWriter_OracleResponseUsed(t *testing.T) {
	judge := &fakeJudge{responses: []string{"  An oracle-written draft.  "}}
	writer := NewDraftWriter(judge)

	draft := writer.Draft(context.Background(), "q", nil)

	if draft != "An oracle-written draft." {
		t.Errorf("expected trimmed oracle draft, got %q", draft)
	}
}
