package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

// Collector holds the Prometheus metrics for tool invocations.
// It implements tools.Observer.
type Collector struct {
	registry *prometheus.Registry

	Invocations *prometheus.CounterVec
	Latency     *prometheus.HistogramVec
}

// NewCollector creates the metrics on a private registry, alongside the
// Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Collector{
		registry: reg,

		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifx_tool_invocations_total",
			Help: "Tool invocations by tool and outcome",
		}, []string{"tool", "outcome"}),

		Latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifx_tool_invocation_duration_seconds",
			Help:    "Wall time of a tool invocation including the LIFX round trip",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"tool"}),
	}
}

// ObserveInvocation records one finished invocation.
func (c *Collector) ObserveInvocation(_ context.Context, inv tools.Invocation) {
	c.Invocations.WithLabelValues(inv.Tool, string(inv.Kind)).Inc()
	c.Latency.WithLabelValues(inv.Tool).Observe(inv.Duration.Seconds())
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
