package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/proofstack/internal/model"
)

const sessionFileName = "latest-session.json"

// FileRepository stores the latest session as a single JSON file
type FileRepository struct {
	dir string
}

// NewFileRepository creates a file-backed repository rooted at dir
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Save overwrites the latest session on disk
func (r *FileRepository) Save(session *model.VerificationSession) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(r.path(), data, 0644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// Load returns the latest session, or (nil, nil) when no session exists or
// the stored payload is unusable. A missing verified answer is substituted
// with the draft answer for sessions written before redlining existed.
func (r *FileRepository) Load() (*model.VerificationSession, error) {
	data, err := os.ReadFile(r.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var session model.VerificationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}

	if session.ID == "" || session.Question == "" && session.DraftAnswer == "" {
		return nil, nil
	}

	if session.VerifiedAnswer == "" {
		session.VerifiedAnswer = session.DraftAnswer
	}

	return &session, nil
}

// Clear removes the latest session file if present
func (r *FileRepository) Clear() error {
	err := os.Remove(r.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dir, sessionFileName)
}
