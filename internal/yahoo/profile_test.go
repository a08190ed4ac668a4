package yahoo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"marketdata/internal/fetch/fetchmock"
	"marketdata/internal/yahoo"
)

const companyProfileFixture = `{
  "quoteSummary": {
    "result": [{
      "summaryProfile": {
        "address1": "1 Main St",
        "city": "Springfield",
        "zip": "00000",
        "country": "USA",
        "phone": "555-0100",
        "website": "https://example.com",
        "industry": "Software",
        "sector": "Technology",
        "longBusinessSummary": "Makes things.",
        "fullTimeEmployees": 1234
      },
      "summaryDetail": {
        "currency": "USD",
        "priceHint": {"raw": 2, "fmt": "2"},
        "beta": {"raw": 1.234, "fmt": "1.23"},
        "fiftyTwoWeekLow": {"raw": 90.5, "fmt": "90.50"},
        "fiftyTwoWeekHigh": {"raw": 150.75, "fmt": "150.75"},
        "fiftyDayAverage": {"raw": 120.111, "fmt": "120.11"},
        "twoHundredDayAverage": {"raw": 110.999, "fmt": "111.00"},
        "dividendRate": {"raw": 0.96, "fmt": "0.96"},
        "dividendYield": {"raw": 0.0044, "fmt": "0.44%"},
        "exDividendDate": {"raw": 1699574400, "fmt": "2023-11-10"},
        "trailingAnnualDividendRate": {"raw": 0.94, "fmt": "0.94"},
        "trailingAnnualDividendYield": {"raw": 0.0043, "fmt": "0.43%"}
      }
    }],
    "error": null
  }
}`

func TestProfile_Company(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := fetchmock.NewMockFetcher(ctrl)
	f.EXPECT().
		Fetch(gomock.Any(), "http://test/v10/finance/quoteSummary/ACME?modules=summaryProfile%2CsummaryDetail").
		Return([]byte(companyProfileFixture), nil).
		Times(1)

	client := yahoo.NewClient(f, yahoo.WithBaseURL("http://test"))

	p, err := client.Profile(context.Background(), "ACME")
	require.NoError(t, err)

	require.Equal(t, "ACME", p.Symbol)
	require.Equal(t, yahoo.ProfileCompany, p.Kind)
	require.Nil(t, p.Components)
	require.NotNil(t, p.Company)

	// Address assembly skips the absent second line.
	require.Equal(t, "1 Main St, Springfield 00000, USA", p.Company.Address)
	require.Equal(t, "555-0100", p.Company.Phone)
	require.Equal(t, "https://example.com", p.Company.Website)
	require.Equal(t, "Software", p.Company.Industry)
	require.Equal(t, "Technology", p.Company.Sector)
	require.Equal(t, "Makes things.", p.Company.Description)
	require.Equal(t, int64(1234), p.Company.Employees)

	require.Equal(t, "USD", p.Detail.Currency)
	require.Equal(t, int32(2), p.Detail.PriceDecimals)
	require.Equal(t, "1.23", *p.Detail.Beta)
	require.Equal(t, "90.50", *p.Detail.FiftyTwoWeekLow)
	require.Equal(t, "150.75", *p.Detail.FiftyTwoWeekHigh)
	require.Equal(t, "120.11", *p.Detail.FiftyDayAverage)
	require.Equal(t, "111.00", *p.Detail.TwoHundredDayAverage)
	require.Equal(t, "0.96", *p.Detail.DividendRate)
	// Yields are fractions scaled to percentages, two decimals.
	require.Equal(t, "0.44", *p.Detail.DividendYield)
	require.Equal(t, "0.43", *p.Detail.TrailingAnnualDividendYield)
	require.Equal(t, "2023-11-10", *p.Detail.ExDividendDate)
}

func TestProfile_CompanyWithSecondAddressLine(t *testing.T) {
	t.Parallel()

	body := `{
	  "quoteSummary": {
	    "result": [{
	      "summaryProfile": {
	        "address1": "1 Main St",
	        "address2": "Suite 200",
	        "city": "Springfield",
	        "zip": "00000",
	        "country": "USA"
	      },
	      "summaryDetail": {"currency": "USD"}
	    }],
	    "error": null
	  }
	}`

	ctrl := gomock.NewController(t)
	f := fetchmock.NewMockFetcher(ctrl)
	f.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(body), nil)

	client := yahoo.NewClient(f, yahoo.WithBaseURL("http://test"))

	p, err := client.Profile(context.Background(), "ACME")
	require.NoError(t, err)
	require.Equal(t, "1 Main St, Suite 200, Springfield 00000, USA", p.Company.Address)
}

func TestProfile_Index(t *testing.T) {
	t.Parallel()

	body := `{
	  "quoteSummary": {
	    "result": [{
	      "summaryDetail": {
	        "currency": "USD",
	        "fiftyTwoWeekLow": {"raw": 4100.25, "fmt": "4,100.25"}
	      },
	      "components": {"components": ["AAPL", "MSFT", "NVDA"]}
	    }],
	    "error": null
	  }
	}`

	ctrl := gomock.NewController(t)
	f := fetchmock.NewMockFetcher(ctrl)
	f.EXPECT().
		Fetch(gomock.Any(), "http://test/v10/finance/quoteSummary/%5EGSPC?modules=summaryDetail%2Ccomponents").
		Return([]byte(body), nil).
		Times(1)

	client := yahoo.NewClient(f, yahoo.WithBaseURL("http://test"))

	p, err := client.Profile(context.Background(), "^GSPC")
	require.NoError(t, err)
	require.Equal(t, yahoo.ProfileIndex, p.Kind)
	require.Nil(t, p.Company)
	require.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, p.Components)
	require.Equal(t, "4100.25", *p.Detail.FiftyTwoWeekLow)
}

func TestProfile_IndexWithoutComponents(t *testing.T) {
	t.Parallel()

	// Some benchmark indices publish no constituent list; absence is kept as
	// nil rather than an empty list.
	body := `{
	  "quoteSummary": {
	    "result": [{
	      "summaryDetail": {"currency": "USD"}
	    }],
	    "error": null
	  }
	}`

	ctrl := gomock.NewController(t)
	f := fetchmock.NewMockFetcher(ctrl)
	f.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(body), nil)

	client := yahoo.NewClient(f, yahoo.WithBaseURL("http://test"))

	p, err := client.Profile(context.Background(), "^DJI")
	require.NoError(t, err)
	require.Equal(t, yahoo.ProfileIndex, p.Kind)
	require.Nil(t, p.Components)
}

func TestProfile_MissingModules(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := fetchmock.NewMockFetcher(ctrl)
	client := yahoo.NewClient(f, yahoo.WithBaseURL("http://test"))

	var se *yahoo.ShapeError

	// summaryDetail missing entirely.
	f.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(`{"quoteSummary":{"result":[{}],"error":null}}`), nil)
	_, err := client.Profile(context.Background(), "ACME")
	require.ErrorAs(t, err, &se)

	// summaryDetail present but summaryProfile missing for a company symbol.
	f.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]byte(`{"quoteSummary":{"result":[{"summaryDetail":{"currency":"USD"}}],"error":null}}`), nil)
	_, err = client.Profile(context.Background(), "ACME")
	require.ErrorAs(t, err, &se)
}
