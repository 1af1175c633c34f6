package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowConsumesBurst(t *testing.T) {
	t.Parallel()

	storage := NewInMemoryStorage()
	defer storage.Stop()

	limit := Limit{Requests: 3, Window: time.Hour}

	for i := 0; i < 3; i++ {
		allowed, err := storage.Allow(context.Background(), "1.2.3.4", limit)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := storage.Allow(context.Background(), "1.2.3.4", limit)
	require.NoError(t, err)
	assert.False(t, allowed, "bucket should be exhausted")
}

func TestAllowKeysAreIndependent(t *testing.T) {
	t.Parallel()

	storage := NewInMemoryStorage()
	defer storage.Stop()

	limit := Limit{Requests: 1, Window: time.Hour}

	allowed, err := storage.Allow(context.Background(), "1.2.3.4", limit)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = storage.Allow(context.Background(), "1.2.3.4", limit)
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different client gets its own bucket.
	allowed, err = storage.Allow(context.Background(), "5.6.7.8", limit)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllowRefillsOverTime(t *testing.T) {
	t.Parallel()

	storage := NewInMemoryStorage()
	defer storage.Stop()

	limit := Limit{Requests: 10, Window: 100 * time.Millisecond}

	for i := 0; i < 10; i++ {
		allowed, err := storage.Allow(context.Background(), "1.2.3.4", limit)
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, err := storage.Allow(context.Background(), "1.2.3.4", limit)
	require.NoError(t, err)
	require.False(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, err = storage.Allow(context.Background(), "1.2.3.4", limit)
	require.NoError(t, err)
	assert.True(t, allowed, "tokens should refill after part of the window elapses")
}
