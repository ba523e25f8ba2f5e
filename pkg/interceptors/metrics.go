package interceptors

import (
	"time"

	"mercator-hq/callisto/pkg/advice"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is advice that records per-method call counts and durations. It is
// independent of the engine-level collector: the collector observes dispatch
// slots, this advice observes individual intercepted methods.
//
// Metrics:
//   - callisto_advice_calls_total{method, outcome}
//   - callisto_advice_call_duration_seconds{method}
type Metrics struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
}

// NewMetrics creates metrics advice registered on the given registry. If
// registry is nil the default Prometheus registerer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callisto",
				Subsystem: "advice",
				Name:      "calls_total",
				Help:      "Total number of intercepted method calls",
			},
			[]string{"method", "outcome"},
		),
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "callisto",
				Subsystem: "advice",
				Name:      "call_duration_seconds",
				Help:      "Duration of intercepted method calls in seconds",
				Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(m.callsTotal, m.callDuration)
	return m
}

// Invoke implements advice.Interceptor.
func (m *Metrics) Invoke(inv advice.Invocation) ([]any, error) {
	method := inv.Method().String()
	start := time.Now()

	results, err := inv.Proceed()

	m.callDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.callsTotal.WithLabelValues(method, outcome).Inc()

	return results, err
}
