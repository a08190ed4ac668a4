package main

import (
    "context"
    "encoding/json"
    "errors"
    "log"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"
    "compress/gzip"
    "io"
    "sync"

    "github.com/prometheus/client_golang/prometheus/promhttp"

    "marketdata/internal/config"
    "marketdata/internal/fetch"
    "marketdata/internal/fetch/breaker"
    "marketdata/internal/fetch/fetchcache"
    "marketdata/internal/fetch/ratelimit"
    "marketdata/internal/httpx"
    "marketdata/internal/yahoo"
)

func main() {
    // Config
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil { log.Fatalf("config: %v", err) }
    port := cfg.Server.Port
    timeoutSec := cfg.Server.RequestTimeoutSec

    logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

    httpClient := httpx.New(time.Duration(timeoutSec) * time.Second)
    if cfg.Yahoo.UserAgent != "" {
        httpClient.UserAgent = cfg.Yahoo.UserAgent
    }

    var f fetch.Fetcher = fetch.NewHTTP(httpClient)
    if cfg.Yahoo.Breaker.Enabled {
        f = breaker.New(f, breaker.Config{
            Name:        "yahoo",
            MaxRequests: uint32(cfg.Yahoo.Breaker.MaxRequests),
            Interval:    time.Duration(cfg.Yahoo.Breaker.IntervalSec) * time.Second,
            Timeout:     time.Duration(cfg.Yahoo.Breaker.TimeoutSec) * time.Second,
        })
    }
    // Prefer token bucket with burst if RPM is set, otherwise use min-interval
    if cfg.Yahoo.MaxRequestsPerMinute > 0 {
        rate := float64(cfg.Yahoo.MaxRequestsPerMinute) / 60.0
        burst := cfg.Yahoo.Burst
        if burst <= 0 { burst = 1 }
        f = &ratelimit.TokenBucketFetcher{F: f, TB: ratelimit.NewTokenBucket(rate, burst)}
    } else if cfg.Yahoo.MinRequestIntervalSec > 0 {
        interval := time.Duration(cfg.Yahoo.MinRequestIntervalSec) * time.Second
        f = &ratelimit.MinInterval{F: f, Interval: interval}
    }
    // Per-URL response cache absorbs repeat lookups for hot symbols
    if cfg.Yahoo.CacheTTLSeconds > 0 {
        f = &fetchcache.Fetcher{F: f, TTL: time.Duration(cfg.Yahoo.CacheTTLSeconds) * time.Second, MaxItems: cfg.Yahoo.CacheMaxItems}
    }

    client := yahoo.NewClient(f,
        yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
        yahoo.WithLogger(logger),
    )

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.Handle("/metrics", promhttp.Handler())
    mux.Handle("/api/chart", withMetrics("chart", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        handleChart(w, r, client)
    })))
    mux.Handle("/api/quote", withMetrics("quote", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        handleQuote(w, r, client)
    })))
    mux.Handle("/api/profile", withMetrics("profile", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        handleProfile(w, r, client)
    })))

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(mux))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        logger.Info("server listening", "port", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

func handleChart(w http.ResponseWriter, r *http.Request, client *yahoo.Client) {
    symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
    if symbol == "" {
        http.Error(w, "missing symbol query param", http.StatusBadRequest)
        return
    }
    rng := r.URL.Query().Get("range")
    if rng == "" { rng = "1mo" }
    interval := r.URL.Query().Get("interval")
    if interval == "" { interval = "1d" }

    ch, err := client.Chart(r.Context(), symbol, rng, interval)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, ch)
}

func handleQuote(w http.ResponseWriter, r *http.Request, client *yahoo.Client) {
    symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
    if symbol == "" {
        http.Error(w, "missing symbol query param", http.StatusBadRequest)
        return
    }
    q, err := client.Quote(r.Context(), symbol)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, q)
}

func handleProfile(w http.ResponseWriter, r *http.Request, client *yahoo.Client) {
    symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
    if symbol == "" {
        http.Error(w, "missing symbol query param", http.StatusBadRequest)
        return
    }
    p, err := client.Profile(r.Context(), symbol)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, p)
}

func writeJSON(w http.ResponseWriter, v any) {
    w.WriteHeader(http.StatusOK)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

// writeError maps upstream failures to 502 and everything else to 500.
// Provider error descriptions pass through verbatim so callers see the
// upstream's own message (e.g. "No data found, symbol may be delisted").
func writeError(w http.ResponseWriter, err error) {
    var pe *yahoo.ProviderError
    var se *yahoo.ShapeError
    switch {
    case errors.As(err, &pe):
        http.Error(w, pe.Error(), http.StatusBadGateway)
    case errors.As(err, &se):
        http.Error(w, se.Error(), http.StatusBadGateway)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
