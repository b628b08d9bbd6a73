package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the server's Prometheus metrics on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	namespace string
	registry  *prometheus.Registry

	toolCalls        *prometheus.CounterVec
	toolCallDuration *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	serviceInfo      *prometheus.GaugeVec
}

// New creates a collector whose metric names are prefixed with namespace
func New(namespace, version string) *Collector {
	ns := strings.ReplaceAll(namespace, "-", "_")

	c := &Collector{
		namespace: ns,
		registry:  prometheus.NewRegistry(),
	}

	c.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls by outcome",
		},
		[]string{"tool", "outcome"},
	)

	c.toolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)

	c.upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "upstream_requests_total",
			Help:      "Total number of job provider requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	c.serviceInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "service_info",
			Help:      "Service information",
		},
		[]string{"version"},
	)

	c.registry.MustRegister(
		c.toolCalls,
		c.toolCallDuration,
		c.upstreamRequests,
		c.serviceInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c.serviceInfo.WithLabelValues(version).Set(1)

	return c
}

// ObserveToolCall records one tool invocation
func (c *Collector) ObserveToolCall(tool, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.toolCalls.WithLabelValues(tool, outcome).Inc()
	c.toolCallDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveUpstream records one provider round trip
func (c *Collector) ObserveUpstream(endpoint, outcome string) {
	if c == nil {
		return
	}
	c.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// Registry exposes the underlying registry, mostly for tests
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
