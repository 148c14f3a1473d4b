package session

import "github.com/ppiankov/proofstack/internal/model"

// Repository persists the single "latest session" slot. One slot,
// overwritten per completed run; the core pipeline stays free of I/O and
// writes through this interface exactly once per run.
type Repository interface {
	// Save overwrites the latest session
	Save(session *model.VerificationSession) error

	// Load returns the latest session, or (nil, nil) when none exists
	Load() (*model.VerificationSession, error)

	// Clear removes the latest session if present
	Clear() error
}
