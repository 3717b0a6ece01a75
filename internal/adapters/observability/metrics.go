package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "concierge"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

var (
	HTTPRequests = counter("http_requests_total", "HTTP requests.", "route", "method", "status")
	HTTPLatency  = histogram("http_request_duration_seconds", "HTTP request duration seconds.",
		prometheus.DefBuckets, "route", "method")

	ExternalRequests = counter("external_requests_total", "Outbound provider requests.", "service", "endpoint", "status")
	ExternalLatency  = histogram("external_request_duration_seconds", "Outbound provider request duration seconds.",
		prometheus.DefBuckets, "service", "endpoint")

	CacheEvents = counter("cache_events_total", "Cache hit|miss|set|del|error|corrupt.", "cache", "event")

	// selection
	GeoAttempts       = counter("geo_widening_attempts_total", "Geo source queries per radius step.", "kind", "outcome")
	CandidateSources  = counter("candidate_source_total", "Where candidate pools were resolved from.", "kind", "source")
	WritebackFailures = counter("writeback_failures_total", "Failed candidate write-backs.", "kind")
	BreakerState      = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "circuit_breaker_state", Help: "0=closed 1=half-open 2=open."},
		[]string{"name"},
	)

	// plans take seconds, not milliseconds
	PlanBuilds = histogram("plan_build_duration_seconds", "Plan assembly duration by outcome.",
		[]float64{0.25, 0.5, 1, 2, 5, 10, 20, 40}, "outcome")
)

// Serve exposes h on a separate listener. An empty addr disables it.
func Serve(addr string, h http.Handler) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)

	go func() {
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency,
		ExternalRequests, ExternalLatency,
		CacheEvents,
		GeoAttempts, CandidateSources, WritebackFailures, BreakerState,
		PlanBuilds,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one outbound attempt; status 0 means a transport error.
func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// ObserveGeoAttempt: outcome is hit, empty or error.
func ObserveGeoAttempt(kind, outcome string) {
	GeoAttempts.WithLabelValues(kind, outcome).Inc()
}

// ObserveCandidateSource: source is store, geo or none.
func ObserveCandidateSource(kind, source string) {
	CandidateSources.WithLabelValues(kind, source).Inc()
}

func ObserveWritebackFailure(kind string) {
	WritebackFailures.WithLabelValues(kind).Inc()
}

func SetBreakerState(name string, state float64) {
	BreakerState.WithLabelValues(name).Set(state)
}

// ObservePlan: outcome is ok, invalid or error.
func ObservePlan(outcome string, dur time.Duration) {
	PlanBuilds.WithLabelValues(outcome).Observe(dur.Seconds())
}
