package main

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/stretchr/testify/require"

    "marketdata/internal/fetch"
    "marketdata/internal/yahoo"
)

// routedClient answers chart and quoteSummary URLs with canned bodies.
func routedClient(t *testing.T, chartBody, summaryBody string) *yahoo.Client {
    t.Helper()
    return yahoo.NewClient(fetch.Func(func(ctx context.Context, url string) ([]byte, error) {
        switch {
        case strings.Contains(url, "/v8/finance/chart/"):
            return []byte(chartBody), nil
        case strings.Contains(url, "/v10/finance/quoteSummary/"):
            return []byte(summaryBody), nil
        }
        return nil, errors.New("unexpected url: " + url)
    }))
}

func TestHandleQuote(t *testing.T) {
    summary := `{"quoteSummary":{"result":[{"price":{
        "symbol":"AAPL","currency":"USD","shortName":"Apple Inc.",
        "regularMarketPrice":{"raw":189.99,"fmt":"189.99"}
    }}],"error":null}}`
    client := routedClient(t, "", summary)

    req := httptest.NewRequest(http.MethodGet, "/api/quote?symbol=AAPL", nil)
    rec := httptest.NewRecorder()
    handleQuote(rec, req, client)

    require.Equal(t, http.StatusOK, rec.Code)
    var got yahoo.Quote
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
    require.Equal(t, "AAPL", got.Symbol)
    require.Equal(t, "189.99", *got.CurrentPrice)
}

func TestHandleQuote_MissingSymbol(t *testing.T) {
    client := routedClient(t, "", "{}")

    req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
    rec := httptest.NewRecorder()
    handleQuote(rec, req, client)

    require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuote_ProviderErrorMapsToBadGateway(t *testing.T) {
    summary := `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for ticker symbol: NOPE"}}}`
    client := routedClient(t, "", summary)

    req := httptest.NewRequest(http.MethodGet, "/api/quote?symbol=NOPE", nil)
    rec := httptest.NewRecorder()
    handleQuote(rec, req, client)

    require.Equal(t, http.StatusBadGateway, rec.Code)
    require.Contains(t, rec.Body.String(), "Quote not found for ticker symbol: NOPE")
}

func TestHandleChart_DefaultsRangeAndInterval(t *testing.T) {
    chart := `{"chart":{"result":[{"meta":{"symbol":"AAPL","regularMarketPrice":105,"previousClose":100},
        "timestamp":[1700000000],
        "indicators":{"quote":[{"open":[104.5],"high":[105.2],"low":[104.1],"close":[104.9],"volume":[1000]}]}
    }],"error":null}}`

    var seenURL string
    client := yahoo.NewClient(fetch.Func(func(ctx context.Context, url string) ([]byte, error) {
        seenURL = url
        return []byte(chart), nil
    }))

    req := httptest.NewRequest(http.MethodGet, "/api/chart?symbol=AAPL", nil)
    rec := httptest.NewRecorder()
    handleChart(rec, req, client)

    require.Equal(t, http.StatusOK, rec.Code)
    require.Contains(t, seenURL, "range=1mo")
    require.Contains(t, seenURL, "interval=1d")

    var got yahoo.Chart
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
    require.Len(t, got.Bars, 1)
    require.Equal(t, int64(1700000000000), got.Bars[0].Timestamp)
}

func TestHandleProfile_Index(t *testing.T) {
    summary := `{"quoteSummary":{"result":[{
        "summaryDetail":{"currency":"USD"},
        "components":{"components":["AAPL","MSFT"]}
    }],"error":null}}`
    client := routedClient(t, "", summary)

    req := httptest.NewRequest(http.MethodGet, "/api/profile?symbol=%5EGSPC", nil)
    rec := httptest.NewRecorder()
    handleProfile(rec, req, client)

    require.Equal(t, http.StatusOK, rec.Code)
    var got yahoo.Profile
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
    require.Equal(t, yahoo.ProfileIndex, got.Kind)
    require.Equal(t, []string{"AAPL", "MSFT"}, got.Components)
}

func TestWriteError_ShapeErrorMapsToBadGateway(t *testing.T) {
    rec := httptest.NewRecorder()
    writeError(rec, &yahoo.ShapeError{Endpoint: "chart", Detail: "empty result"})
    require.Equal(t, http.StatusBadGateway, rec.Code)

    rec = httptest.NewRecorder()
    writeError(rec, errors.New("boom"))
    require.Equal(t, http.StatusInternalServerError, rec.Code)
}
