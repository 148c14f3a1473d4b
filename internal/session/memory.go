package session

import (
	"sync"

	"github.com/ppiankov/proofstack/internal/model"
)

// MemoryRepository holds the latest session in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	session *model.VerificationSession
}

// NewMemoryRepository creates an in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save overwrites the latest session
func (r *MemoryRepository) Save(session *model.VerificationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session
	return nil
}

// Load returns the latest session, or (nil, nil) when none exists
func (r *MemoryRepository) Load() (*model.VerificationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.session == nil {
		return nil, nil
	}

	copied := *r.session
	if copied.VerifiedAnswer == "" {
		copied.VerifiedAnswer = copied.DraftAnswer
	}
	return &copied, nil
}

// Clear removes the latest session
func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}
