package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/proofstack/internal/ingest"
	"github.com/ppiankov/proofstack/internal/model"
	"github.com/ppiankov/proofstack/internal/pipeline"
	"github.com/ppiankov/proofstack/internal/session"
	"github.com/spf13/cobra"
)

var (
	question     string
	sourceURLs   []string
	useDemo      bool
	domain       string
	strictness   string
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	ignoreRobots bool
	noCache      bool
	noFooter     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
	verifyFanout int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [source files...]",
	Short: "Verify an AI answer against source documents",
	Long: `Verify runs the full verification pipeline:
- Chunk source documents into fixed text windows
- Draft an answer to your question from the sources
- Extract discrete, checkable claims from the draft
- Retrieve the most relevant evidence chunks per claim
- Grade each claim as supported, weak, or unsupported
- Produce a trust score, top risks, and a citation-annotated answer

Sources come from local files, URLs, or the built-in demo dataset.

Example:
  proofstack verify -q "What happened during the incident?" --demo
  proofstack verify -q "Is MFA required?" policy.md incident.md
  proofstack verify -q "..." --url https://example.com/postmortem
  proofstack verify -q "..." --demo --llm --llm-provider openai`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Input flags
	verifyCmd.Flags().StringVarP(&question, "question", "q", "", "question to answer and verify (required)")
	verifyCmd.Flags().StringSliceVar(&sourceURLs, "url", nil, "source URL to fetch (repeatable)")
	verifyCmd.Flags().BoolVar(&useDemo, "demo", false, "use the built-in demo dataset")
	verifyCmd.Flags().StringVar(&domain, "domain", "general", "answer domain label (e.g. security, finance)")
	verifyCmd.Flags().StringVar(&strictness, "strictness", "standard", "verification strictness label")
	_ = verifyCmd.MarkFlagRequired("question")

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall run timeout")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "ProofStack/0.1 (+https://github.com/ppiankov/proofstack)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per URL")
	verifyCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "skip robots.txt checks when fetching URLs")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response cache")

	// LLM flags
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM claim extraction and verification")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
	verifyCmd.Flags().IntVar(&verifyFanout, "verify-workers", 0, "max concurrent verification calls (0 = one per claim)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if !useDemo && len(args) == 0 && len(sourceURLs) == 0 {
		return fmt.Errorf("no sources: pass file paths, --url, or --demo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.IgnoreRobots = ignoreRobots
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.VerifyWorkers = verifyFanout
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	stateDir, err := dataDir()
	if err != nil {
		return err
	}
	if cfg.Cache.Enabled {
		cfg.Cache.Dir = stateDir + "/cache"
	}

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	// Collect sources
	sources, err := collectSources(ctx, cfg, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Question: %s\n", question)
		fmt.Fprintf(os.Stderr, "Sources: %d\n", len(sources))
		fmt.Fprintf(os.Stderr, "Oracle: %v\n", llmEnabled)
		fmt.Fprintln(os.Stderr)
	}

	repo := session.NewFileRepository(stateDir)
	p := pipeline.NewPipeline(cfg, repo)

	sess, err := p.Run(ctx, pipeline.Request{
		Question:       question,
		Sources:        sources,
		Domain:         domain,
		Strictness:     strictness,
		UseDemoDataset: useDemo,
	})
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.RenderSummary(sess)

	if outJSON != "" {
		if err := renderer.RenderJSON(sess, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON report: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(sess, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown report: %s\n", outMD)
		}
	}

	return nil
}

// collectSources gathers demo, file, and URL sources in that order
func collectSources(ctx context.Context, cfg *model.Config, paths []string) ([]model.SourceDoc, error) {
	var sources []model.SourceDoc

	if useDemo {
		demo, err := ingest.LoadDemoDataset()
		if err != nil {
			return nil, fmt.Errorf("load demo dataset: %w", err)
		}
		sources = append(sources, demo...)
	}

	if len(paths) > 0 {
		files, err := ingest.LoadFiles(paths)
		if err != nil {
			return nil, err
		}
		sources = append(sources, files...)
	}

	if len(sourceURLs) > 0 {
		fetcher := ingest.NewFetcher(cfg.HTTP)
		for _, u := range sourceURLs {
			doc, err := fetcher.FetchURL(ctx, u)
			if err != nil {
				return nil, fmt.Errorf("fetch %s: %w", u, err)
			}
			sources = append(sources, doc)
		}
	}

	return sources, nil
}
