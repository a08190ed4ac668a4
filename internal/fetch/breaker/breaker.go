package breaker

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"marketdata/internal/fetch"
)

// Config holds circuit breaker tuning for the upstream provider.
type Config struct {
	Name        string
	MaxRequests uint32        // max requests allowed in half-open state
	Interval    time.Duration // cyclic period of the closed state to clear counts
	Timeout     time.Duration // period of the open state before half-open
}

var DefaultConfig = Config{
	Name:        "upstream",
	MaxRequests: 5,
	Interval:    time.Minute,
	Timeout:     30 * time.Second,
}

// Fetcher wraps a fetcher with a circuit breaker so a failing upstream is
// given time to recover instead of being hammered.
type Fetcher struct {
	F  fetch.Fetcher
	cb *gobreaker.CircuitBreaker[[]byte]
}

func New(f fetch.Fetcher, cfg Config) *Fetcher {
	if cfg.Name == "" {
		cfg.Name = DefaultConfig.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = DefaultConfig.MaxRequests
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig.Timeout
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
	}
	return &Fetcher{F: f, cb: gobreaker.NewCircuitBreaker[[]byte](settings)}
}

func (b *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := b.cb.Execute(func() ([]byte, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return b.F.Fetch(ctx, url)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, fmt.Errorf("upstream unavailable: %w", err)
	}
	return body, err
}
