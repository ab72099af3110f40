package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedGenerator wraps a TextGenerator with a token-bucket rate
// limiter so bursts of extraction calls never exceed the provider budget.
// Complete blocks until a token is available or the context is cancelled.
type RateLimitedGenerator struct {
	inner   TextGenerator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator wraps gen with a limiter allowing requestsPerMinute
// sustained calls and a small burst. A non-positive rate disables limiting.
func NewRateLimitedGenerator(gen TextGenerator, requestsPerMinute float64) *RateLimitedGenerator {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerMinute/60), 3)
	}
	return &RateLimitedGenerator{inner: gen, limiter: limiter}
}

// Complete waits for rate-limit clearance and then delegates to the wrapped
// generator.
func (g *RateLimitedGenerator) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limit wait: %v", ErrNetwork, err)
		}
	}
	return g.inner.Complete(ctx, prompt, maxTokens)
}

// Model returns the wrapped generator's model name.
func (g *RateLimitedGenerator) Model() string { return g.inner.Model() }
