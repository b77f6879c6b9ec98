package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relaygate",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by relaygate",
		},
		[]string{"path", "method", "code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relaygate",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests handled by relaygate",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relaygate",
			Name:      "cache_hits_total",
			Help:      "Total proxied requests served from the response cache",
		},
	)

	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relaygate",
			Name:      "cache_misses_total",
			Help:      "Total proxied requests that had to go upstream",
		},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relaygate",
			Name:      "upstream_requests_total",
			Help:      "Total calls issued to the upstream API",
		},
		[]string{"code"},
	)

	cacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "relaygate",
			Name:      "cache_entries",
			Help:      "Current number of entries in the response cache",
		},
	)
)

func Init() {
	prometheus.MustRegister(requestTotal, requestDuration, cacheHits, cacheMisses, upstreamRequests, cacheEntries)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(path, method, code string, d time.Duration) {
	requestTotal.WithLabelValues(path, method, code).Inc()
	requestDuration.WithLabelValues(path, method).Observe(d.Seconds())
}

func IncCacheHit() {
	cacheHits.Inc()
}

func IncCacheMiss() {
	cacheMisses.Inc()
}

func IncUpstreamRequest(code string) {
	upstreamRequests.WithLabelValues(code).Inc()
}

func SetCacheEntries(n int) {
	cacheEntries.Set(float64(n))
}
