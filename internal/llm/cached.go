package llm

import (
	"context"
	"time"

	"github.com/ppiankov/proofstack/internal/cache"
)

// CachedJudge wraps a Judge with a response cache keyed by prompt hash.
// Only successful responses are cached; errors always reach the caller so
// its fallback logic runs.
type CachedJudge struct {
	inner Judge
	store cache.Cache
	ttl   time.Duration
}

// NewCachedJudge wraps judge with the given cache store
func NewCachedJudge(judge Judge, store cache.Cache, ttl time.Duration) *CachedJudge {
	return &CachedJudge{
		inner: judge,
		store: store,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider's name
func (j *CachedJudge) Name() string {
	return j.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (j *CachedJudge) IsAvailable(ctx context.Context) bool {
	return j.inner.IsAvailable(ctx)
}

// Judge returns a cached response when present, otherwise delegates and
// stores the result
func (j *CachedJudge) Judge(ctx context.Context, req JudgeRequest) (string, error) {
	key := cache.PromptKey(j.inner.Name(), req.System+"\x00"+req.Prompt)

	if data, found := j.store.Get(key); found {
		return string(data), nil
	}

	response, err := j.inner.Judge(ctx, req)
	if err != nil {
		return "", err
	}

	_ = j.store.Set(key, []byte(response), j.ttl)
	return response, nil
}
