// Package metrics exposes Prometheus instrumentation for the HTTP API and
// the background extraction pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	DocumentExtractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_extractions_total",
			Help: "Document extraction jobs by outcome",
		},
		[]string{"outcome"},
	)
)

// Init registers all collectors. Call once at startup.
func Init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, DocumentExtractions)
}

// Middleware records request counts and latencies per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		path := c.Route().Path
		if path == "" {
			path = "undefined"
		}

		HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(c.Response().StatusCode())).Inc()
		HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())

		return err
	}
}

// Handler serves the Prometheus scrape endpoint on a Fiber route.
func Handler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
