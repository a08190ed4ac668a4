package fetchcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"marketdata/internal/fetch"
)

// entry stores one cached response body with expiry.
type entry struct {
	expiresAt time.Time
	body      []byte
}

// Fetcher caches response bodies per URL for a TTL and coalesces concurrent
// fetches of the same URL into a single upstream request.
type Fetcher struct {
	F        fetch.Fetcher
	TTL      time.Duration
	MaxItems int

	mu    sync.RWMutex
	items map[string]entry

	sf singleflight.Group
}

func (c *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.F == nil || c.TTL <= 0 {
		return c.F.Fetch(ctx, url)
	}

	now := time.Now()
	c.mu.RLock()
	e, ok := c.items[url]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.body, nil
	}

	v, err, _ := c.sf.Do(url, func() (any, error) {
		// Re-check under coalescing: another caller may have refreshed.
		c.mu.RLock()
		e, ok := c.items[url]
		c.mu.RUnlock()
		if ok && time.Now().Before(e.expiresAt) {
			return e.body, nil
		}
		body, err := c.F.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		c.store(url, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Fetcher) store(url string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[string]entry)
	}
	c.items[url] = entry{expiresAt: time.Now().Add(c.TTL), body: body}
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		// best-effort cap: evict expired first, then arbitrary keys
		now := time.Now()
		for k, v := range c.items {
			if now.After(v.expiresAt) {
				delete(c.items, k)
			}
			if len(c.items) <= c.MaxItems {
				return
			}
		}
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				return
			}
			delete(c.items, k)
		}
	}
}
