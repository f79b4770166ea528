package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics for the tool-dispatch surface
// and provides the handler to expose them on the HTTP binding.
type Collector struct {
	registry *prometheus.Registry

	ToolInvocations *prometheus.CounterVec
	ToolDurations   *prometheus.HistogramVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	invocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wifi_tool_invocations_total",
		Help: "Total number of dispatched tool calls, labeled by tool and outcome.",
	}, []string{"tool", "outcome"})
	registry.MustRegister(invocations)

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wifi_tool_duration_seconds",
		Help:    "Tool call latency in seconds, including subprocess execution.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"tool"})
	registry.MustRegister(durations)

	return &Collector{
		registry:        registry,
		ToolInvocations: invocations,
		ToolDurations:   durations,
	}
}

// ObserveTool implements the dispatcher's MetricsRecorder.
func (c *Collector) ObserveTool(tool, outcome string, elapsed time.Duration) {
	c.ToolInvocations.WithLabelValues(tool, outcome).Inc()
	c.ToolDurations.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Handler serves the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
