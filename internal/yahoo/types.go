package yahoo

// Response envelope types for the v8 chart and v10 quoteSummary endpoints.
// Exactly one of error / non-empty result is populated per response; the
// payload is always result[0].

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- v8 chart ---

type chartEnvelope struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Currency             string  `json:"currency"`
	Symbol               string  `json:"symbol"`
	ExchangeName         string  `json:"exchangeName"`
	InstrumentType       string  `json:"instrumentType"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	PreviousClose        float64 `json:"previousClose"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	RegularMarketTime    int64   `json:"regularMarketTime"`
	Timezone             string  `json:"timezone"`
	ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
	CurrentTradingPeriod struct {
		Regular tradingPeriod `json:"regular"`
	} `json:"currentTradingPeriod"`
}

type tradingPeriod struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type indicators struct {
	Quote []ohlcv `json:"quote"`
}

// ohlcv holds the four parallel price sequences plus volume; individual
// entries are null where the provider had no sample.
type ohlcv struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// --- v10 quoteSummary ---

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

// quoteSummaryResult carries only the modules this client ever requests;
// each is nil unless it was part of the modules query parameter.
type quoteSummaryResult struct {
	Price          *priceModule          `json:"price"`
	SummaryDetail  *summaryDetailModule  `json:"summaryDetail"`
	SummaryProfile *summaryProfileModule `json:"summaryProfile"`
	Components     *componentsModule     `json:"components"`
}

type priceModule struct {
	Symbol                     string    `json:"symbol"`
	Currency                   string    `json:"currency"`
	ShortName                  string    `json:"shortName"`
	LongName                   string    `json:"longName"`
	QuoteType                  string    `json:"quoteType"`
	Exchange                   string    `json:"exchange"`
	ExchangeName               string    `json:"exchangeName"`
	PriceHint                  *RawValue `json:"priceHint"`
	RegularMarketPrice         *RawValue `json:"regularMarketPrice"`
	RegularMarketDayHigh       *RawValue `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *RawValue `json:"regularMarketDayLow"`
	RegularMarketOpen          *RawValue `json:"regularMarketOpen"`
	RegularMarketPreviousClose *RawValue `json:"regularMarketPreviousClose"`
	RegularMarketChange        *RawValue `json:"regularMarketChange"`
	RegularMarketChangePercent *RawValue `json:"regularMarketChangePercent"`
	RegularMarketVolume        *RawValue `json:"regularMarketVolume"`
	MarketCap                  *RawValue `json:"marketCap"`
}

type summaryDetailModule struct {
	Currency                    string    `json:"currency"`
	PriceHint                   *RawValue `json:"priceHint"`
	Beta                        *RawValue `json:"beta"`
	FiftyTwoWeekLow             *RawValue `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh            *RawValue `json:"fiftyTwoWeekHigh"`
	FiftyDayAverage             *RawValue `json:"fiftyDayAverage"`
	TwoHundredDayAverage        *RawValue `json:"twoHundredDayAverage"`
	DividendRate                *RawValue `json:"dividendRate"`
	DividendYield               *RawValue `json:"dividendYield"`
	ExDividendDate              *RawValue `json:"exDividendDate"`
	TrailingAnnualDividendRate  *RawValue `json:"trailingAnnualDividendRate"`
	TrailingAnnualDividendYield *RawValue `json:"trailingAnnualDividendYield"`
}

type summaryProfileModule struct {
	Address1            string `json:"address1"`
	Address2            string `json:"address2"`
	City                string `json:"city"`
	Zip                 string `json:"zip"`
	Country             string `json:"country"`
	Phone               string `json:"phone"`
	Website             string `json:"website"`
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	LongBusinessSummary string `json:"longBusinessSummary"`
	FullTimeEmployees   int64  `json:"fullTimeEmployees"`
}

type componentsModule struct {
	Components []string `json:"components"`
}
