// Package metrics exposes Prometheus metrics for the itinerary store, its
// storage backend, and the HTTP API. Each Collector owns a private registry so
// tests can create as many as they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Collector holds every metric the service reports.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	mutations    *prometheus.CounterVec
	saves        *prometheus.CounterVec
	saveDuration prometheus.Histogram
	retries      *prometheus.CounterVec
	itineraries  prometheus.Gauge
	loaded       prometheus.Gauge
	subscribers  prometheus.Gauge
}

// NewCollector creates a Collector whose metric names are prefixed with
// namespace. Go runtime and process collectors are registered as well.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Store mutations by operation and result",
		}, []string{"op", "result"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_saves_total",
			Help:      "Collection saves by status",
		}, []string{"status"}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_save_duration_seconds",
			Help:      "Time spent writing one collection snapshot, retries included",
			Buckets:   prometheus.DefBuckets,
		}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_retries_total",
			Help:      "Storage calls retried after a transient failure",
		}, []string{"op"}),
		itineraries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_itineraries",
			Help:      "Itineraries currently held in memory",
		}),
		loaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_loaded",
			Help:      "1 once the initial load has resolved",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_subscribers",
			Help:      "Active change-feed subscribers",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.mutations,
		c.saves,
		c.saveDuration,
		c.retries,
		c.itineraries,
		c.loaded,
		c.subscribers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveMutation implements store.Recorder.
func (c *Collector) ObserveMutation(op string, result domain.MutationResult) {
	c.mutations.WithLabelValues(op, result.String()).Inc()
}

// ObserveSave implements store.Recorder.
func (c *Collector) ObserveSave(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.saves.WithLabelValues(status).Inc()
	c.saveDuration.Observe(d.Seconds())
}

// SetItineraries implements store.Recorder.
func (c *Collector) SetItineraries(n int) { c.itineraries.Set(float64(n)) }

// SetLoaded implements store.Recorder.
func (c *Collector) SetLoaded(loaded bool) {
	if loaded {
		c.loaded.Set(1)
		return
	}
	c.loaded.Set(0)
}

// SetSubscribers implements store.Recorder.
func (c *Collector) SetSubscribers(n int) { c.subscribers.Set(float64(n)) }

// ObserveRetry counts one retried storage call. Its signature matches
// storage.ResilienceConfig.OnRetry.
func (c *Collector) ObserveRetry(op string, _ int, _ error) {
	c.retries.WithLabelValues(op).Inc()
}

// Middleware records request count and latency per chi route pattern, so
// /itineraries/{id} is one series no matter how many ids are requested.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
