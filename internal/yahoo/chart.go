package yahoo

import (
	"context"
	"fmt"
)

// Bar is one OHLCV sample. Individual fields are nil where the provider had
// no value at that index; the bar itself is still emitted so the series
// stays aligned with the timestamp sequence.
type Bar struct {
	Timestamp int64    `json:"timestamp"` // milliseconds since epoch
	Open      *float64 `json:"open"`
	Close     *float64 `json:"close"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Volume    *int64   `json:"volume"`
}

// Chart is the flattened price chart for one symbol.
type Chart struct {
	Symbol                string  `json:"symbol"`
	Currency              string  `json:"currency"`
	InstrumentType        string  `json:"instrumentType"`
	ExchangeName          string  `json:"exchangeName"`
	CurrentPrice          float64 `json:"currentPrice"`
	PreviousClose         float64 `json:"previousClose"`
	PriceChange           float64 `json:"priceChange"`
	PriceChangePercentage *string `json:"priceChangePercentage"` // 2 decimals; nil when previous close is zero
	UpdatedAt             int64   `json:"updatedAt"`             // milliseconds since epoch
	Timezone              string  `json:"timezone"`
	TimezoneName          string  `json:"timezoneName"`
	RegularMarketStart    int64   `json:"regularMarketStart"`
	RegularMarketEnd      int64   `json:"regularMarketEnd"`
	Bars                  []Bar   `json:"bars"`
}

// Chart fetches and flattens the time-series price chart for symbol.
// rng and interval are provider-defined spans like "1mo" / "1d" and are
// passed through verbatim.
func (c *Client) Chart(ctx context.Context, symbol, rng, interval string) (*Chart, error) {
	var env chartEnvelope
	if err := c.get(ctx, c.chartURL(symbol, rng, interval), &env); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if e := env.Chart.Error; e != nil {
		c.log.Error("chart provider error", "symbol", symbol, "code", e.Code, "description", e.Description)
		return nil, &ProviderError{Endpoint: "chart", Code: e.Code, Description: e.Description}
	}
	if len(env.Chart.Result) == 0 {
		return nil, &ShapeError{Endpoint: "chart", Detail: "empty result"}
	}

	r := env.Chart.Result[0]
	meta := r.Meta
	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}

	ch := &Chart{
		Symbol:             meta.Symbol,
		Currency:           meta.Currency,
		InstrumentType:     meta.InstrumentType,
		ExchangeName:       meta.ExchangeName,
		CurrentPrice:       meta.RegularMarketPrice,
		PreviousClose:      prev,
		PriceChange:        meta.RegularMarketPrice - prev,
		UpdatedAt:          meta.RegularMarketTime * 1000,
		Timezone:           meta.Timezone,
		TimezoneName:       meta.ExchangeTimezoneName,
		RegularMarketStart: meta.CurrentTradingPeriod.Regular.Start,
		RegularMarketEnd:   meta.CurrentTradingPeriod.Regular.End,
	}
	// A zero previous close would make the percentage non-finite; report it
	// as absent instead.
	if prev != 0 {
		pct := formatFixed(ch.PriceChange/prev*100, 2)
		ch.PriceChangePercentage = &pct
	}

	var q ohlcv
	if len(r.Indicators.Quote) > 0 {
		q = r.Indicators.Quote[0]
	}
	bars := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		b := Bar{Timestamp: ts * 1000}
		if i < len(q.Open) {
			b.Open = q.Open[i]
		}
		if i < len(q.Close) {
			b.Close = q.Close[i]
		}
		if i < len(q.High) {
			b.High = q.High[i]
		}
		if i < len(q.Low) {
			b.Low = q.Low[i]
		}
		if i < len(q.Volume) {
			b.Volume = q.Volume[i]
		}
		bars = append(bars, b)
	}
	ch.Bars = bars

	c.log.Debug("chart normalized", "symbol", symbol, "points", len(bars))
	return ch, nil
}
