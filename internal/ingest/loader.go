package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/proofstack/internal/model"
)

// LoadFiles reads local files into source documents. IDs are derived from
// the file's base name so repeated ingestion of the same file set is
// deterministic.
func LoadFiles(paths []string) ([]model.SourceDoc, error) {
	sources := make([]model.SourceDoc, 0, len(paths))

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", path, err)
		}

		sources = append(sources, model.SourceDoc{
			ID:       "source-" + slugify(filepath.Base(path)),
			FileName: filepath.Base(path),
			Content:  string(content),
			IsDemo:   false,
		})
	}

	return sources, nil
}

// slugify lowercases the name and replaces non-alphanumeric runs with
// hyphens so it is safe inside chunk and snippet IDs
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
