// Package yahoo normalizes Yahoo Finance chart and quoteSummary payloads
// into flat, display-ready records. The HTTP transport is injected as a
// fetch.Fetcher; this package only decides URLs and reshapes JSON.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"marketdata/internal/fetch"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client resolves charts, quotes and profiles for one provider endpoint.
// Every call issues exactly one request and allocates a fresh record; the
// client itself holds no per-symbol state and is safe for concurrent use.
type Client struct {
	baseURL string
	fetcher fetch.Fetcher
	log     *slog.Logger
}

// Option is a configuration option for the client.
type Option func(*Client)

// WithBaseURL overrides the provider base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger routes the client's diagnostic events to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func NewClient(f fetch.Fetcher, options ...Option) *Client {
	c := &Client{baseURL: defaultBaseURL, fetcher: f, log: slog.Default()}
	for _, option := range options {
		option(c)
	}
	return c
}

// get fetches url and decodes the body into dest.
func (c *Client) get(ctx context.Context, u string, dest any) error {
	body, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) chartURL(symbol, rng, interval string) string {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("range", rng)
	q.Set("interval", interval)
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())
}

func (c *Client) quoteSummaryURL(symbol string, modules []string) string {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))
	return fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())
}
