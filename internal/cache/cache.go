package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PromptKey generates a cache key from an oracle prompt. Keyed by content
// hash so identical claim/evidence pairs hit the cache across runs.
func PromptKey(provider, prompt string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + prompt))
	return "proofstack:v1:" + hex.EncodeToString(hash[:])
}
