package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// LimitedJudge wraps a Judge with a token-bucket rate limit so concurrent
// claim fan-out cannot burst past provider limits
type LimitedJudge struct {
	inner   Judge
	limiter *rate.Limiter
}

// NewLimitedJudge wraps judge with the given sustained rate. A non-positive
// rate disables limiting and returns the judge unchanged.
func NewLimitedJudge(judge Judge, requestsPerSecond float64, burst int) Judge {
	if requestsPerSecond <= 0 {
		return judge
	}
	if burst <= 0 {
		burst = 1
	}

	return &LimitedJudge{
		inner:   judge,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped provider's name
func (j *LimitedJudge) Name() string {
	return j.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (j *LimitedJudge) IsAvailable(ctx context.Context) bool {
	return j.inner.IsAvailable(ctx)
}

// Judge waits for rate limit clearance, then delegates
func (j *LimitedJudge) Judge(ctx context.Context, req JudgeRequest) (string, error) {
	if err := j.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return j.inner.Judge(ctx, req)
}
