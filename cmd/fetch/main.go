package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "log/slog"
    "os"
    "time"

    "marketdata/internal/config"
    "marketdata/internal/fetch"
    "marketdata/internal/httpx"
    "marketdata/internal/yahoo"
)

func main() {
    var kind string
    var symbol string
    var rng string
    var interval string
    var timeout int
    var configPath string

    flag.StringVar(&kind, "kind", getenv("KIND", "quote"), "record kind: chart, quote or profile")
    flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "AAPL"), "ticker symbol (index symbols start with ^)")
    flag.StringVar(&rng, "range", getenv("RANGE", "1mo"), "chart range, e.g. 1d, 5d, 1mo, 1y")
    flag.StringVar(&interval, "interval", getenv("INTERVAL", "1d"), "chart interval, e.g. 1m, 15m, 1d")
    flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if timeout != 0 { cfg.Server.RequestTimeoutSec = timeout }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
    if cfg.Yahoo.UserAgent != "" {
        httpClient.UserAgent = cfg.Yahoo.UserAgent
    }

    client := yahoo.NewClient(fetch.NewHTTP(httpClient),
        yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
        yahoo.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
    )

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
    defer cancel()

    var out any
    switch kind {
    case "chart":
        out, err = client.Chart(ctx, symbol, rng, interval)
    case "quote":
        out, err = client.Quote(ctx, symbol)
    case "profile":
        out, err = client.Profile(ctx, symbol)
    default:
        log.Fatalf("unknown kind %q (want chart, quote or profile)", kind)
    }
    if err != nil {
        log.Fatalf("%s %s: %v", kind, symbol, err)
    }

    b, _ := json.MarshalIndent(out, "", "  ")
    fmt.Println(string(b))
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var x int
        _, _ = fmt.Sscanf(v, "%d", &x)
        if x != 0 { return x }
    }
    return def
}
