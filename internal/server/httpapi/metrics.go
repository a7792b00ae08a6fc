package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrijs2005/memorymap/internal/share"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorymap_http_requests_total",
			Help: "Total HTTP requests served by the share server.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memorymap_http_request_duration_seconds",
			Help:    "HTTP request latency of the share server in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	viewCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memorymap_view_cache_hits_total",
		Help: "Shared view cache hits.",
	})
	viewCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memorymap_view_cache_misses_total",
		Help: "Shared view cache misses.",
	})
)

// Metrics records request counts and latencies per normalized path.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath folds id lists into a placeholder so labels stay bounded.
func normalizePath(path string) string {
	switch path {
	case "/health/live", "/metrics":
		return path
	}
	if strings.HasPrefix(path, share.PathPrefix) {
		return share.PathPrefix + "{ids}"
	}
	return "other"
}
