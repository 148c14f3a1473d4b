package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/proofstack/internal/pipeline"
	"github.com/ppiankov/proofstack/internal/session"
	"github.com/spf13/cobra"
)

var (
	reportJSON     string
	reportMD       string
	reportNoFooter bool
	showAnswer     bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show or export the latest verification session",
	Long: `Report loads the latest persisted verification session and renders it.

Without output flags it prints the trust summary and top risks. Use --json
or --md to export the full report, and --answer to print the verified
answer with its evidence citations.

Example:
  proofstack report
  proofstack report --answer
  proofstack report --json report.json --md report.md`,
	RunE: runReport,
}

// reportClearCmd removes the persisted session
var reportClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the latest persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		stateDir, err := dataDir()
		if err != nil {
			return err
		}
		if err := session.NewFileRepository(stateDir).Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("✓ Cleared latest session")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportClearCmd)

	reportCmd.Flags().StringVar(&reportJSON, "json", "", "output JSON report path (optional)")
	reportCmd.Flags().StringVar(&reportMD, "md", "", "output Markdown report path (optional)")
	reportCmd.Flags().BoolVar(&reportNoFooter, "no-footer", false, "disable footer in Markdown reports")
	reportCmd.Flags().BoolVar(&showAnswer, "answer", false, "print the verified answer")
}

func runReport(cmd *cobra.Command, args []string) error {
	stateDir, err := dataDir()
	if err != nil {
		return err
	}

	sess, err := session.NewFileRepository(stateDir).Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return fmt.Errorf("no session found: run 'proofstack verify' first")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Session: %s (created %s)\n\n", sess.ID, sess.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}

	renderer := pipeline.NewRenderer(!reportNoFooter)
	renderer.RenderSummary(sess)

	if showAnswer {
		fmt.Println()
		fmt.Println(sess.VerifiedAnswer)
	}

	if reportJSON != "" {
		if err := renderer.RenderJSON(sess, reportJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Printf("✓ Wrote JSON report: %s\n", reportJSON)
	}
	if reportMD != "" {
		if err := renderer.RenderMarkdown(sess, reportMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Printf("✓ Wrote Markdown report: %s\n", reportMD)
	}

	return nil
}
