// Package metrics exposes Prometheus collectors for the solar time service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"route", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solar_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	streamConnectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_stream_connections_total",
			Help: "Live clock stream connection events.",
		},
		[]string{"event"},
	)

	streamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solar_streams_active",
			Help: "Currently open live clock streams.",
		},
	)

	locationAcquisitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_location_acquisitions_total",
			Help: "Location acquisitions by result: ok, cached, or the failure code.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		streamConnectionsTotal,
		streamsActive,
		locationAcquisitionsTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served request. route should be the matched
// route template so unknown paths collapse into a single label.
func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "other"
	}
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDurationSeconds.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// StreamOpened counts a new live stream.
func StreamOpened() {
	streamConnectionsTotal.WithLabelValues("connect").Inc()
	streamsActive.Inc()
}

// StreamClosed counts a finished live stream.
func StreamClosed() {
	streamConnectionsTotal.WithLabelValues("disconnect").Inc()
	streamsActive.Dec()
}

// StreamRejected counts a stream refused by the per-client limit.
func StreamRejected() {
	streamConnectionsTotal.WithLabelValues("rejected").Inc()
}

// ObserveLocation records the outcome of one acquisition.
func ObserveLocation(result string) {
	locationAcquisitionsTotal.WithLabelValues(result).Inc()
}
