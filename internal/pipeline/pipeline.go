package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/proofstack/internal/cache"
	"github.com/ppiankov/proofstack/internal/chunk"
	"github.com/ppiankov/proofstack/internal/extract"
	"github.com/ppiankov/proofstack/internal/llm"
	"github.com/ppiankov/proofstack/internal/model"
	"github.com/ppiankov/proofstack/internal/redline"
	"github.com/ppiankov/proofstack/internal/retrieve"
	"github.com/ppiankov/proofstack/internal/score"
	"github.com/ppiankov/proofstack/internal/session"
	"github.com/ppiankov/proofstack/internal/verify"
)

// Pipeline orchestrates one complete verification run:
// ingest -> chunk -> draft -> extract claims -> retrieve -> verify ->
// score + redline -> persist session.
type Pipeline struct {
	chunker   *chunk.Chunker
	retriever *retrieve.Retriever
	drafter   *extract.DraftWriter
	extractor *extract.ClaimExtractor
	verifier  *verify.Verifier
	scorer    *score.Scorer
	repo      session.Repository
	config    *model.Config
}

// NewPipeline creates a pipeline with the given configuration and session
// repository. A missing or misconfigured oracle is not fatal: every
// oracle-backed stage has a deterministic fallback.
func NewPipeline(cfg *model.Config, repo session.Repository) *Pipeline {
	var judge llm.Judge
	if cfg.LLM.Provider != "" {
		j, err := llm.NewJudge(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else if j != nil {
			if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
				store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
				j = llm.NewCachedJudge(j, store, cfg.Cache.DiskTTL)
			}
			judge = llm.NewLimitedJudge(j, cfg.LLM.RequestsPerSecond, 1)
		}
	}

	return &Pipeline{
		chunker:   chunk.NewChunker(cfg.Pipeline.ChunkWords),
		retriever: retrieve.NewRetriever(cfg.Pipeline.TopK),
		drafter:   extract.NewDraftWriter(judge),
		extractor: extract.NewClaimExtractor(judge, cfg.Pipeline.MaxClaims),
		verifier:  verify.NewVerifier(judge, cfg.Concurrency.VerifyWorkers),
		scorer:    score.NewScorer(),
		repo:      repo,
		config:    cfg,
	}
}

// Request carries the inputs for one verification run
type Request struct {
	Question       string
	Sources        []model.SourceDoc
	Domain         string
	Strictness     string
	UseDemoDataset bool
}

// Run executes the full pipeline and persists the resulting session.
// The deterministic stages (chunk, retrieve, score, redline) are total
// functions; only ingestion and persistence can fail here.
func (p *Pipeline) Run(ctx context.Context, req Request) (*model.VerificationSession, error) {
	verbose := p.config.Output.Verbose

	// 1. Chunk sources into fixed text windows
	chunks := p.chunker.Chunk(req.Sources)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Chunked %d sources into %d chunks\n", len(req.Sources), len(chunks))
	}

	// 2. Draft a first-pass answer
	draft := p.drafter.Draft(ctx, req.Question, req.Sources)

	// 3. Extract claims from the draft
	claims := p.extractor.Extract(ctx, draft)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(claims))
	}

	// 4. Retrieve evidence per claim
	var snippets []model.EvidenceSnippet
	evidenceByClaim := make(map[string][]model.EvidenceSnippet, len(claims))
	for _, claim := range claims {
		retrieved := p.retriever.Retrieve(claim, chunks)
		evidenceByClaim[claim.ID] = retrieved
		snippets = append(snippets, retrieved...)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Retrieved %d evidence snippets\n", len(snippets))
	}

	// 5. Verify claims concurrently
	verdicts := p.verifier.Verify(ctx, claims, evidenceByClaim)

	// 6. Score and redline; both read the same verdict set independently
	report := p.scorer.Score(claims, verdicts)
	redlined := redline.Redline(draft, claims, verdicts, snippets)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Trust score: %d/100\n", report.TrustScore)
	}

	sess := &model.VerificationSession{
		ID:               fmt.Sprintf("session-%d", time.Now().UnixMilli()),
		CreatedAt:        time.Now().UTC(),
		Question:         req.Question,
		DraftAnswer:      draft,
		VerifiedAnswer:   redlined.VerifiedText,
		DiffText:         redlined.DiffText,
		Domain:           req.Domain,
		Strictness:       req.Strictness,
		UseDemoDataset:   req.UseDemoDataset,
		Sources:          req.Sources,
		Chunks:           chunks,
		Claims:           claims,
		EvidenceSnippets: snippets,
		ClaimVerdicts:    verdicts,
		TrustReport:      report,
	}

	// Single write per completed run; never written mid-run.
	if p.repo != nil {
		if err := p.repo.Save(sess); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	return sess, nil
}
