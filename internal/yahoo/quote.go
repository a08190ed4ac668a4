package yahoo

import (
	"context"
	"fmt"
)

// Quote is the flattened current-quote snapshot for one symbol. Price-like
// fields are display strings rendered at the instrument's price precision;
// volume and market cap stay numeric.
type Quote struct {
	Symbol                string   `json:"symbol"`
	Currency              string   `json:"currency"`
	ShortName             string   `json:"shortName"`
	LongName              string   `json:"longName"`
	QuoteType             string   `json:"quoteType"`
	Exchange              string   `json:"exchange"`
	ExchangeName          *string  `json:"exchangeName"` // null when the provider omits it
	PriceDecimals         int32    `json:"priceDecimals"`
	CurrentPrice          *string  `json:"currentPrice"`
	DayHighPrice          *string  `json:"dayHighPrice"`
	DayLowPrice           *string  `json:"dayLowPrice"`
	OpenPrice             *string  `json:"openPrice"`
	PreviousClosePrice    *string  `json:"previousClosePrice"`
	PriceChange           *string  `json:"priceChange"`
	PriceChangePercentage *string  `json:"priceChangePercentage"` // always 2 decimals
	Volume                *float64 `json:"volume"`
	MarketCap             *float64 `json:"marketCap"`
}

// Quote fetches and flattens the current quote snapshot for symbol using
// the quoteSummary price module.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	var env quoteSummaryEnvelope
	if err := c.get(ctx, c.quoteSummaryURL(symbol, []string{"price"}), &env); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if e := env.QuoteSummary.Error; e != nil {
		c.log.Error("quote provider error", "symbol", symbol, "code", e.Code, "description", e.Description)
		return nil, &ProviderError{Endpoint: "quoteSummary", Code: e.Code, Description: e.Description}
	}
	if len(env.QuoteSummary.Result) == 0 {
		return nil, &ShapeError{Endpoint: "quoteSummary", Detail: "empty result"}
	}
	p := env.QuoteSummary.Result[0].Price
	if p == nil {
		return nil, &ShapeError{Endpoint: "quoteSummary", Detail: "price module missing"}
	}

	places := precision(p.PriceHint)
	longName := p.LongName
	if longName == "" {
		longName = p.ShortName
	}
	var exchangeName *string
	if p.ExchangeName != "" {
		exchangeName = &p.ExchangeName
	}

	return &Quote{
		Symbol:                p.Symbol,
		Currency:              p.Currency,
		ShortName:             p.ShortName,
		LongName:              longName,
		QuoteType:             p.QuoteType,
		Exchange:              p.Exchange,
		ExchangeName:          exchangeName,
		PriceDecimals:         places,
		CurrentPrice:          p.RegularMarketPrice.Format(places),
		DayHighPrice:          p.RegularMarketDayHigh.Format(places),
		DayLowPrice:           p.RegularMarketDayLow.Format(places),
		OpenPrice:             p.RegularMarketOpen.Format(places),
		PreviousClosePrice:    p.RegularMarketPreviousClose.Format(places),
		PriceChange:           p.RegularMarketChange.Format(places),
		PriceChangePercentage: p.RegularMarketChangePercent.Format(2),
		Volume:                p.RegularMarketVolume.Number(),
		MarketCap:             p.MarketCap.Number(),
	}, nil
}
