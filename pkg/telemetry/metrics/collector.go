package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edgesentry/edgesentry/pkg/config"
)

// Collector owns the Prometheus registry and the counters/histogram
// backing the /metrics/prom endpoint.
type Collector struct {
	registry *prometheus.Registry

	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	reloadsTotal       *prometheus.CounterVec
	fuelExhaustedTotal prometheus.Counter
}

// NewCollector builds and registers a Collector's metrics under the
// configured namespace. If registry is nil, a fresh prometheus.Registry
// is created.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "edgesentry"
	}

	c := &Collector{
		registry: registry,
		evaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of policy evaluations by result.",
		}, []string{"result"}),
		evaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of policy evaluations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of policy reload attempts by result.",
		}, []string{"result"}),
		fuelExhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fuel_exhausted_total",
			Help:      "Total number of evaluations terminated by fuel exhaustion.",
		}),
	}

	registry.MustRegister(
		c.evaluationsTotal,
		c.evaluationDuration,
		c.reloadsTotal,
		c.fuelExhaustedTotal,
	)
	return c
}

// RecordEvaluation records the outcome of one evaluation. result is one
// of "allow", "deny", or "error".
func (c *Collector) RecordEvaluation(result string, duration time.Duration, fuelExhausted bool) {
	c.evaluationsTotal.WithLabelValues(result).Inc()
	c.evaluationDuration.Observe(duration.Seconds())
	if fuelExhausted {
		c.fuelExhaustedTotal.Inc()
	}
}

// RecordReload records the outcome of one reload attempt. result is
// "success" or "failure".
func (c *Collector) RecordReload(result string) {
	c.reloadsTotal.WithLabelValues(result).Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
