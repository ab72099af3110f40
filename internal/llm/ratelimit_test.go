package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGenerator struct {
	calls int
}

func (c *countingGenerator) Complete(context.Context, string, int) (string, error) {
	c.calls++
	return "ok", nil
}

func (c *countingGenerator) Model() string { return "counting" }

func TestRateLimitedGeneratorPassesThrough(t *testing.T) {
	inner := &countingGenerator{}
	gen := NewRateLimitedGenerator(inner, 600)

	result, err := gen.Complete(context.Background(), "prompt", 100)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "counting", gen.Model())
}

func TestRateLimitedGeneratorZeroRateDisablesLimiting(t *testing.T) {
	inner := &countingGenerator{}
	gen := NewRateLimitedGenerator(inner, 0)

	for i := 0; i < 50; i++ {
		_, err := gen.Complete(context.Background(), "prompt", 100)
		require.NoError(t, err)
	}
	assert.Equal(t, 50, inner.calls)
}

func TestRateLimitedGeneratorCancelledContext(t *testing.T) {
	inner := &countingGenerator{}
	// tiny budget so the burst drains and the next call has to wait
	gen := NewRateLimitedGenerator(inner, 0.001)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := gen.Complete(ctx, "prompt", 100)
		require.NoError(t, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err := gen.Complete(waitCtx, "prompt", 100)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 3, inner.calls)
}
