package yahoo

import (
	"context"
	"fmt"
	"strings"
)

// ProfileKind tags which variant of a profile record is populated.
type ProfileKind string

const (
	ProfileIndex   ProfileKind = "index"
	ProfileCompany ProfileKind = "company"
)

// CompanyProfile is company metadata from the summaryProfile module.
type CompanyProfile struct {
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Sector      string `json:"sector"`
	Description string `json:"description"`
	Employees   int64  `json:"employees"`
}

// SummaryDetail carries the price-history and dividend blocks shared by
// both profile variants. Yields are provider fractions shown as
// percentages with two decimals regardless of the instrument's price
// precision.
type SummaryDetail struct {
	Currency                    string  `json:"currency"`
	PriceDecimals               int32   `json:"priceDecimals"`
	Beta                        *string `json:"beta"`
	FiftyTwoWeekLow             *string `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh            *string `json:"fiftyTwoWeekHigh"`
	FiftyDayAverage             *string `json:"fiftyDayAverage"`
	TwoHundredDayAverage        *string `json:"twoHundredDayAverage"`
	DividendRate                *string `json:"dividendRate"`
	DividendYield               *string `json:"dividendYield"`
	ExDividendDate              *string `json:"exDividendDate"`
	TrailingAnnualDividendRate  *string `json:"trailingAnnualDividendRate"`
	TrailingAnnualDividendYield *string `json:"trailingAnnualDividendYield"`
}

// Profile is the flattened profile record. Kind decides which variant is
// populated: Components for an index (nil when the provider discloses no
// constituents), Company for everything else. The other variant is always
// absent, never merely empty.
type Profile struct {
	Symbol     string          `json:"symbol"`
	Kind       ProfileKind     `json:"kind"`
	Components []string        `json:"components,omitempty"`
	Company    *CompanyProfile `json:"company,omitempty"`
	Detail     SummaryDetail   `json:"summaryDetail"`
}

// Profile fetches and flattens either an index detail+components record or
// a company profile+detail record, branching once on the ^ index prefix.
func (c *Client) Profile(ctx context.Context, symbol string) (*Profile, error) {
	isIndex := strings.HasPrefix(symbol, "^")
	modules := []string{"summaryProfile", "summaryDetail"}
	if isIndex {
		modules = []string{"summaryDetail", "components"}
	}

	var env quoteSummaryEnvelope
	if err := c.get(ctx, c.quoteSummaryURL(symbol, modules), &env); err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}
	if e := env.QuoteSummary.Error; e != nil {
		c.log.Error("profile provider error", "symbol", symbol, "code", e.Code, "description", e.Description)
		return nil, &ProviderError{Endpoint: "quoteSummary", Code: e.Code, Description: e.Description}
	}
	if len(env.QuoteSummary.Result) == 0 {
		return nil, &ShapeError{Endpoint: "quoteSummary", Detail: "empty result"}
	}
	r := env.QuoteSummary.Result[0]
	if r.SummaryDetail == nil {
		return nil, &ShapeError{Endpoint: "quoteSummary", Detail: "summaryDetail module missing"}
	}

	prof := &Profile{
		Symbol: symbol,
		Detail: buildSummaryDetail(r.SummaryDetail),
	}
	if isIndex {
		prof.Kind = ProfileIndex
		// Broad benchmark indices may not disclose constituents; absence is
		// preserved as nil rather than coerced to an empty list.
		if r.Components != nil && r.Components.Components != nil {
			prof.Components = r.Components.Components
		}
		return prof, nil
	}

	prof.Kind = ProfileCompany
	sp := r.SummaryProfile
	if sp == nil {
		return nil, &ShapeError{Endpoint: "quoteSummary", Detail: "summaryProfile module missing"}
	}
	prof.Company = &CompanyProfile{
		Address:     assembleAddress(sp),
		Phone:       sp.Phone,
		Website:     sp.Website,
		Industry:    sp.Industry,
		Sector:      sp.Sector,
		Description: sp.LongBusinessSummary,
		Employees:   sp.FullTimeEmployees,
	}
	return prof, nil
}

// assembleAddress builds a single postal address line, e.g.
// "1 Main St, Springfield 00000, USA". The second address line gets its own
// separator only when present.
func assembleAddress(sp *summaryProfileModule) string {
	parts := make([]string, 0, 4)
	if sp.Address1 != "" {
		parts = append(parts, sp.Address1)
	}
	if sp.Address2 != "" {
		parts = append(parts, sp.Address2)
	}
	if cityLine := strings.TrimSpace(sp.City + " " + sp.Zip); cityLine != "" {
		parts = append(parts, cityLine)
	}
	if sp.Country != "" {
		parts = append(parts, sp.Country)
	}
	return strings.Join(parts, ", ")
}

func buildSummaryDetail(sd *summaryDetailModule) SummaryDetail {
	// summaryDetail resolves its own priceHint, independent of the quote
	// resolver's.
	places := precision(sd.PriceHint)
	det := SummaryDetail{
		Currency:                    sd.Currency,
		PriceDecimals:               places,
		Beta:                        sd.Beta.Format(places),
		FiftyTwoWeekLow:             sd.FiftyTwoWeekLow.Format(places),
		FiftyTwoWeekHigh:            sd.FiftyTwoWeekHigh.Format(places),
		FiftyDayAverage:             sd.FiftyDayAverage.Format(places),
		TwoHundredDayAverage:        sd.TwoHundredDayAverage.Format(places),
		DividendRate:                sd.DividendRate.Format(places),
		DividendYield:               sd.DividendYield.FormatPercent(),
		TrailingAnnualDividendRate:  sd.TrailingAnnualDividendRate.Format(places),
		TrailingAnnualDividendYield: sd.TrailingAnnualDividendYield.FormatPercent(),
	}
	if sd.ExDividendDate != nil && sd.ExDividendDate.Fmt != "" {
		det.ExDividendDate = &sd.ExDividendDate.Fmt
	}
	return det
}
