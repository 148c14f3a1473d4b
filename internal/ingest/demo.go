package ingest

import (
	"embed"
	"fmt"
	"path"

	"github.com/ppiankov/proofstack/internal/model"
)

//go:embed demodata
var demoFS embed.FS

// demoFiles fixes source IDs and load order for the demo dataset
var demoFiles = []struct {
	id       string
	fileName string
}{
	{id: "source-incident-report", fileName: "incident_report.md"},
	{id: "source-security-policy", fileName: "security_policy.md"},
	{id: "source-logs", fileName: "logs.txt"},
}

// LoadDemoDataset loads the embedded incident corpus in deterministic order
func LoadDemoDataset() ([]model.SourceDoc, error) {
	sources := make([]model.SourceDoc, 0, len(demoFiles))

	for _, spec := range demoFiles {
		content, err := demoFS.ReadFile(path.Join("demodata", spec.fileName))
		if err != nil {
			return nil, fmt.Errorf("read demo file %s: %w", spec.fileName, err)
		}

		sources = append(sources, model.SourceDoc{
			ID:       spec.id,
			FileName: path.Join("demo1", spec.fileName),
			Content:  string(content),
			IsDemo:   true,
		})
	}

	return sources, nil
}
