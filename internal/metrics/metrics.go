// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Metrics holds the domain counters.
type Metrics struct {
	ordersPrinted      prometheus.Counter
	labelsGenerated    *prometheus.CounterVec
	entitlementDenied  *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
}

// New registers the instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		ordersPrinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "etiquetou_orders_printed_total",
			Help: "Orders transitioned to printed via batch print.",
		}),
		labelsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "etiquetou_labels_generated_total",
			Help: "Shipping labels rendered, by page format.",
		}, []string{"format"}),
		entitlementDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "etiquetou_entitlement_denied_total",
			Help: "Requests rejected by a plan ceiling.",
		}, []string{"ceiling"}),
		httpRequestSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etiquetou_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// RecordOrdersPrinted increments the printed-order counter by n.
func (m *Metrics) RecordOrdersPrinted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ordersPrinted.Add(float64(n))
}

// RecordLabelGenerated increments the label counter for a page format.
func (m *Metrics) RecordLabelGenerated(format string) {
	if m == nil {
		return
	}
	m.labelsGenerated.WithLabelValues(format).Inc()
}

// RecordEntitlementDenied increments the denial counter for a ceiling kind.
func (m *Metrics) RecordEntitlementDenied(ceiling string) {
	if m == nil {
		return
	}
	m.entitlementDenied.WithLabelValues(ceiling).Inc()
}

// GinMiddleware records request latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestSeconds.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Module provides the shared metrics instruments.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
