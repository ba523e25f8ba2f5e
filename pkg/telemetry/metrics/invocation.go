package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// InvocationMetrics tracks proxy invocation dispatch.
//
// Metrics:
//   - callisto_proxy_invocations_total: invocations, by dispatch kind
//   - callisto_proxy_invocation_duration_seconds: dispatch duration histogram
//   - callisto_proxy_chain_depth: interceptor chain depth histogram
type InvocationMetrics struct {
	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	chainDepth         prometheus.Histogram
}

// NewInvocationMetrics creates and registers invocation metrics with the
// provided registry.
func NewInvocationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *InvocationMetrics {
	im := &InvocationMetrics{
		invocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "invocations_total",
				Help:      "Total number of proxy invocations dispatched",
			},
			[]string{"kind"},
		),

		invocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "invocation_duration_seconds",
				Help:      "Duration of proxy invocation dispatch in seconds",
				Buckets:   cfg.InvocationDurationBuckets,
			},
			[]string{"kind"},
		),

		chainDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chain_depth",
				Help:      "Number of interceptors executed per advised invocation",
				Buckets:   cfg.ChainDepthBuckets,
			},
		),
	}

	registry.MustRegister(
		im.invocationsTotal,
		im.invocationDuration,
		im.chainDepth,
	)
	return im
}

// RecordInvocation records one dispatched invocation.
func (im *InvocationMetrics) RecordInvocation(kind string, seconds float64, chainDepth int) {
	im.invocationsTotal.WithLabelValues(kind).Inc()
	im.invocationDuration.WithLabelValues(kind).Observe(seconds)
	if chainDepth > 0 {
		im.chainDepth.Observe(float64(chainDepth))
	}
}
