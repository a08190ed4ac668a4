package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketdata/internal/fetch"
)

func TestFetcher_PassesThroughWhenClosed(t *testing.T) {
	t.Parallel()

	b := New(fetch.Func(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("ok"), nil
	}), Config{Name: "test"})

	body, err := b.Fetch(context.Background(), "http://x")
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestFetcher_OpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var calls int
	boom := errors.New("boom")
	b := New(fetch.Func(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		return nil, boom
	}), Config{Name: "test", Timeout: time.Hour})

	// Trip the breaker: it opens once at least five requests have been seen
	// with a failure ratio of one half or more.
	for i := 0; i < 5; i++ {
		_, err := b.Fetch(context.Background(), "http://x")
		require.ErrorIs(t, err, boom)
	}

	_, err := b.Fetch(context.Background(), "http://x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "upstream unavailable")
	require.Equal(t, 5, calls, "open breaker should not reach the upstream")
}

func TestFetcher_DefaultsApplied(t *testing.T) {
	t.Parallel()

	b := New(fetch.Func(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("ok"), nil
	}), Config{})
	require.NotNil(t, b)

	_, err := b.Fetch(context.Background(), "http://x")
	require.NoError(t, err)
}
