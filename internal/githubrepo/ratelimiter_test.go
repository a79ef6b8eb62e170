package githubrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUpToBurst(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}

	assert.Zero(t, limiter.Available())
}

func TestRateLimiterBlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(1, time.Hour)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, limiter.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(2, time.Hour)
	limiter.tokens = 0

	limiter.now = func() time.Time { return limiter.lastRefill.Add(2 * time.Hour) }

	assert.Equal(t, 2, limiter.Available())
}

func TestRateLimiterDefaults(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0, 0)

	assert.Equal(t, defaultMaxRequests, limiter.Available())
}
