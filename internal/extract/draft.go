package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/proofstack/internal/llm"
	"github.com/ppiankov/proofstack/internal/model"
)

const draftSystemMessage = "You are an analyst writing a concise first-pass answer from the provided source documents. Only state what the sources say."

// sourceCharBudget bounds each source's contribution to the draft prompt
const sourceCharBudget = 2400

// DraftWriter produces the first-pass answer that will be verified
// downstream. The oracle path degrades to a deterministic template so the
// pipeline runs without any network dependency.
type DraftWriter struct {
	judge llm.Judge // nil means template-only operation
}

// NewDraftWriter creates a draft writer
func NewDraftWriter(judge llm.Judge) *DraftWriter {
	return &DraftWriter{judge: judge}
}

// Draft answers the question over the sources
func (w *DraftWriter) Draft(ctx context.Context, question string, sources []model.SourceDoc) string {
	if w.judge != nil {
		response, err := w.judge.Judge(ctx, llm.JudgeRequest{
			System: draftSystemMessage,
			Prompt: buildDraftPrompt(question, sources),
		})
		if err == nil && strings.TrimSpace(response) != "" {
			return strings.TrimSpace(response)
		}
	}

	return templateDraft(question, sources)
}

func buildDraftPrompt(question string, sources []model.SourceDoc) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\nSource documents:\n")

	for _, source := range sources {
		content := source.Content
		if len(content) > sourceCharBudget {
			content = content[:sourceCharBudget]
		}
		b.WriteString(fmt.Sprintf("--- %s ---\n%s\n", source.FileName, content))
	}

	b.WriteString("\nWrite a 4-6 sentence answer. Every sentence must be a discrete statement grounded in the sources.\n")
	return b.String()
}

// templateDraft builds a deterministic draft from the leading sentences of
// each source
func templateDraft(question string, sources []model.SourceDoc) string {
	var lines []string
	lines = append(lines, "Draft answer to: "+strings.TrimSpace(question))

	for _, source := range sources {
		sentences := splitSentences(source.Content)
		limit := 2
		if limit > len(sentences) {
			limit = len(sentences)
		}
		lines = append(lines, sentences[:limit]...)
	}

	return strings.Join(lines, " ")
}
