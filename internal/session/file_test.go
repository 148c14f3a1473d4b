package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/proofstack/internal/model"
)

func sampleSession() *model.VerificationSession {
	return &model.VerificationSession{
		ID:             "session-123",
		CreatedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Question:       "What happened?",
		DraftAnswer:    "draft text",
		VerifiedAnswer: "verified text",
		Claims: []model.Claim{
			{ID: "claim-1", Text: "a claim", ClaimType: model.ClaimTypeFact, Criticality: model.CriticalityLow},
		},
		ClaimVerdicts: []model.ClaimVerdict{
			{ClaimID: "claim-1", Verdict: model.VerdictSupported, Confidence: 0.9, Explanation: "r", EvidenceSnippetIDs: []string{}},
		},
		TrustReport: model.TrustReport{TrustScore: 75, SupportedCount: 1, TopRisks: []string{}},
	}
}

func TestFileRepository_SaveLoadRoundTrip(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	if err := repo.Save(sampleSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a session")
	}

	if loaded.ID != "session-123" {
		t.Errorf("unexpected ID: %q", loaded.ID)
	}
	if loaded.VerifiedAnswer != "verified text" {
		t.Errorf("unexpected verified answer: %q", loaded.VerifiedAnswer)
	}
	if len(loaded.Claims) != 1 || len(loaded.ClaimVerdicts) != 1 {
		t.Errorf("claims/verdicts not round-tripped: %d/%d", len(loaded.Claims), len(loaded.ClaimVerdicts))
	}
	if loaded.TrustReport.TrustScore != 75 {
		t.Errorf("unexpected trust score: %d", loaded.TrustReport.TrustScore)
	}
}

func TestFileRepository_LoadMissing(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("expected no error for missing session, got %v", err)
	}
	if loaded != nil {
		t.Error("expected nil session when none was saved")
	}
}

func TestFileRepository_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)

	if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("expected corrupt session treated as missing, got error %v", err)
	}
	if loaded != nil {
		t.Error("expected nil session for corrupt payload")
	}
}

func TestFileRepository_MissingVerifiedAnswerSubstituted(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	sess := sampleSession()
	sess.VerifiedAnswer = ""
	if err := repo.Save(sess); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.VerifiedAnswer != "draft text" {
		t.Errorf("expected draft substituted for missing verified answer, got %q", loaded.VerifiedAnswer)
	}
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	first := sampleSession()
	if err := repo.Save(first); err != nil {
		t.Fatal(err)
	}

	second := sampleSession()
	second.ID = "session-456"
	if err := repo.Save(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != "session-456" {
		t.Errorf("expected latest session, got %q", loaded.ID)
	}
}

func TestFileRepository_Clear(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	if err := repo.Save(sampleSession()); err != nil {
		t.Fatal(err)
	}
	if err := repo.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Error("expected no session after clear")
	}

	// Clearing an already-empty repository is fine
	if err := repo.Clear(); err != nil {
		t.Errorf("clear on empty repo failed: %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()

	loaded, err := repo.Load()
	if err != nil || loaded != nil {
		t.Fatalf("expected empty repo, got %v / %v", loaded, err)
	}

	sess := sampleSession()
	sess.VerifiedAnswer = ""
	if err := repo.Save(sess); err != nil {
		t.Fatal(err)
	}

	loaded, err = repo.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.VerifiedAnswer != "draft text" {
		t.Errorf("expected draft substitution, got %q", loaded.VerifiedAnswer)
	}

	// The returned copy must not alias stored state
	loaded.Question = "mutated"
	again, _ := repo.Load()
	if again.Question == "mutated" {
		t.Error("load must return a copy")
	}

	if err := repo.Clear(); err != nil {
		t.Fatal(err)
	}
	loaded, _ = repo.Load()
	if loaded != nil {
		t.Error("expected no session after clear")
	}
}
