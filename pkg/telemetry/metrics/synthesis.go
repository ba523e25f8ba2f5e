package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SynthesisMetrics tracks proxy creation.
//
// Metrics:
//   - callisto_proxy_proxies_created_total: proxies synthesized, by strategy
type SynthesisMetrics struct {
	proxiesCreated *prometheus.CounterVec
}

// NewSynthesisMetrics creates and registers synthesis metrics with the
// provided registry.
func NewSynthesisMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SynthesisMetrics {
	sm := &SynthesisMetrics{
		proxiesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "proxies_created_total",
				Help:      "Total number of proxies synthesized",
			},
			[]string{"strategy"},
		),
	}

	registry.MustRegister(sm.proxiesCreated)
	return sm
}

// RecordCreated records one synthesized proxy.
func (sm *SynthesisMetrics) RecordCreated(strategy string) {
	sm.proxiesCreated.WithLabelValues(strategy).Inc()
}
