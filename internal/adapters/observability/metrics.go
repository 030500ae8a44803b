package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "hotel"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

var (
	HTTPRequests = counter("http_requests_total", "HTTP requests served.", "route", "method", "status")
	HTTPLatency  = histogram("http_request_duration_seconds", "HTTP request latency.",
		prometheus.DefBuckets, "route", "method")

	CatalogRequests = counter("external_requests_total", "Outbound catalog requests.", "service", "endpoint", "status")
	CatalogLatency  = histogram("external_request_duration_seconds", "Outbound catalog latency.",
		prometheus.DefBuckets, "service", "endpoint")

	// event is one of hit, miss, set, del.
	CacheEvents = counter("cache_events_total", "Hotel cache events.", "cache", "event")

	// statement is select, insert, update, delete or other.
	DBLatency = histogram("db_query_duration_seconds", "Database statement latency.",
		[]float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}, "statement")

	// op is create, modify or delete; outcome is ok, not_found, invalid or error.
	HotelMutations = counter("hotel_mutations_total", "Hotel write operations by outcome.", "op", "outcome")
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequests, HTTPLatency,
		CatalogRequests, CatalogLatency,
		CacheEvents, DBLatency, HotelMutations,
	}
}

// InitRegistry returns a fresh registry holding every hotel collector.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors()...)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve exposes its own registry on a side listener. Empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Msg("metrics listener up")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics listener stopped")
		}
	}()
}

func ObserveHTTP(route, method string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(d.Seconds())
}

func ObserveExternal(service, endpoint string, status int, d time.Duration) {
	CatalogRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	CatalogLatency.WithLabelValues(service, endpoint).Observe(d.Seconds())
}

func ObserveCache(cache, event string) { CacheEvents.WithLabelValues(cache, event).Inc() }

func ObserveDB(statement string, d time.Duration) {
	DBLatency.WithLabelValues(statement).Observe(d.Seconds())
}

func ObserveMutation(op, outcome string) { HotelMutations.WithLabelValues(op, outcome).Inc() }
