// Package metrics exposes the site's Prometheus collectors.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "advisorsite",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisorsite",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "advisorsite",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	contentMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisorsite",
			Subsystem: "content",
			Name:      "mutations_total",
			Help:      "Content mutations by entity, action and result.",
		},
		[]string{"entity", "action", "result"},
	)

	contentReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisorsite",
			Subsystem: "content",
			Name:      "reloads_total",
			Help:      "Cache reloads from the store by entity and result.",
		},
		[]string{"entity", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		contentMutations,
		contentReloads,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveMutation counts one content mutation. Rejected inputs and store
// failures are told apart by the error's class.
func ObserveMutation(entity, action string, err error) {
	contentMutations.WithLabelValues(entity, action, resultLabel(err)).Inc()
}

// ObserveReload counts one cache reload.
func ObserveReload(entity string, err error) {
	contentReloads.WithLabelValues(entity, resultLabel(err)).Inc()
}

// Classifier lets callers label their own error classes without this
// package importing them.
type Classifier interface {
	MetricLabel() string
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var classified Classifier
	if errors.As(err, &classified) {
		return classified.MetricLabel()
	}
	return "error"
}
