package main

import (
    "net/http"
    "strconv"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

var (
    httpRequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "marketdata",
            Subsystem: "http",
            Name:      "requests_total",
            Help:      "Total number of HTTP requests",
        },
        []string{"endpoint", "status_code"},
    )
    httpRequestDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "marketdata",
            Subsystem: "http",
            Name:      "request_duration_seconds",
            Help:      "Duration of HTTP requests in seconds",
            Buckets:   durationBuckets,
        },
        []string{"endpoint"},
    )
)

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (s *statusRecorder) WriteHeader(code int) {
    s.status = code
    s.ResponseWriter.WriteHeader(code)
}

// withMetrics counts requests per endpoint and observes their latency.
func withMetrics(endpoint string, next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(rec, r)
        httpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
        httpRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
    })
}
