package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketdata/internal/fetch"
)

func okFetcher() fetch.Fetcher {
	return fetch.Func(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("ok"), nil
	})
}

func TestMinInterval_SpacesCalls(t *testing.T) {
	t.Parallel()

	m := &MinInterval{F: okFetcher(), Interval: 50 * time.Millisecond}

	start := time.Now()
	_, err := m.Fetch(context.Background(), "http://x")
	require.NoError(t, err)
	_, err = m.Fetch(context.Background(), "http://x")
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestMinInterval_ZeroIntervalPassesThrough(t *testing.T) {
	t.Parallel()

	m := &MinInterval{F: okFetcher()}
	start := time.Now()
	for i := 0; i < 10; i++ {
		_, err := m.Fetch(context.Background(), "http://x")
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestMinInterval_ContextCancel(t *testing.T) {
	t.Parallel()

	m := &MinInterval{F: okFetcher(), Interval: time.Hour}
	_, err := m.Fetch(context.Background(), "http://x") // first call is free
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Fetch(ctx, "http://x")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTokenBucket_AllowsBurstThenThrottles(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(10, 3) // 10 tokens/s, burst of 3
	f := &TokenBucketFetcher{F: okFetcher(), TB: tb}

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), "http://x")
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), 50*time.Millisecond, "burst should not block")

	// The fourth call has to wait for a token (~100ms at 10/s).
	_, err := f.Fetch(context.Background(), "http://x")
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestTokenBucket_ContextCancel(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(0.001, 1)
	f := &TokenBucketFetcher{F: okFetcher(), TB: tb}

	_, err := f.Fetch(context.Background(), "http://x") // consumes the only token
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, "http://x")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
