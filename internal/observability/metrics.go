// Package observability exposes prometheus collectors for the service.
package observability

import (
	"strconv"
	"time"

	"impacttrack/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "impacttrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route template and status.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "impacttrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	importRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "impacttrack",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Spreadsheet rows processed by import kind and outcome.",
	}, []string{"kind", "outcome"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, importRows)
}

// HTTPMetrics records request counts and latency keyed by the matched route
// template. Errors are rendered here through the app error handler so the
// recorded status is the one sent to the client.
func HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(c.Response().StatusCode())).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}

// RecordImport counts accepted and rejected rows of one import run.
func RecordImport(res entities.ImportResult) {
	importRows.WithLabelValues(string(res.Kind), "imported").Add(float64(res.Imported))
	importRows.WithLabelValues(string(res.Kind), "skipped").Add(float64(res.Skipped))
}
