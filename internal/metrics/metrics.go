// Package metrics provides Prometheus metrics for the project store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectstore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "projectstore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// File tree metrics
	treesFlattenedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectstore_trees_flattened_total",
			Help: "Total number of file trees flattened, by result",
		},
		[]string{"result"},
	)

	treeNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "projectstore_tree_nodes",
			Help:    "Number of flattened nodes per stored file tree",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// Websocket metrics
	wsClientsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "projectstore_ws_clients_active",
			Help: "Number of connected websocket clients",
		},
	)

	wsEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectstore_ws_events_total",
			Help: "Total project events broadcast to websocket clients",
		},
		[]string{"type"},
	)
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordFlatten records the outcome of flattening one file tree.
func RecordFlatten(nodes int, err error) {
	if err != nil {
		treesFlattenedTotal.WithLabelValues("error").Inc()
		return
	}
	treesFlattenedTotal.WithLabelValues("ok").Inc()
	treeNodes.Observe(float64(nodes))
}

func WSClientConnected()    { wsClientsActive.Inc() }
func WSClientDisconnected() { wsClientsActive.Dec() }

// RecordEvent counts a broadcast project event.
func RecordEvent(eventType string) {
	wsEventsTotal.WithLabelValues(eventType).Inc()
}
