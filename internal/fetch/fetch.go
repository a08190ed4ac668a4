package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"marketdata/internal/httpx"
)

// Fetcher retrieves the raw response body for a fully-formed URL.
// Transport policy (timeouts, status handling) lives here; callers only see
// the body text or an error.
//
//go:generate mockgen -package=fetchmock -destination=fetchmock/fetcher.go -source=fetch.go Fetcher
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Func adapts a plain function to the Fetcher interface.
type Func func(ctx context.Context, url string) ([]byte, error)

func (f Func) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// HTTPFetcher issues GET requests through an httpx.Client and fails on any
// non-2xx status, returning a short excerpt of the error body.
type HTTPFetcher struct {
	Client  *httpx.Client
	Headers map[string]string
}

func NewHTTP(client *httpx.Client) *HTTPFetcher {
	return &HTTPFetcher{Client: client}
}

func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	resp, err := h.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", url, resp.StatusCode, string(b))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
