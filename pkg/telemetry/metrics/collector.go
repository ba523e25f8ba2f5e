package metrics

import (
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/proxy"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in the engine.
// It implements proxy.Observer, so a collector handed to the proxy factory
// records synthesis and invocation metrics without further wiring:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	factory := proxy.NewFactory(proxy.WithObserver(collector))
//
// Label cardinality is structurally bounded: strategies and dispatch kinds
// are small fixed sets, so no cardinality limiting is needed.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	synthesis  *SynthesisMetrics
	invocation *InvocationMetrics
}

var _ proxy.Observer = (*Collector)(nil)

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil a fresh registry is used.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.InvocationDurationBuckets) == 0 {
		cfg.InvocationDurationBuckets = config.DefaultInvocationDurationBuckets()
	}
	if len(cfg.ChainDepthBuckets) == 0 {
		cfg.ChainDepthBuckets = config.DefaultChainDepthBuckets()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}
	c.synthesis = NewSynthesisMetrics(cfg, registry)
	c.invocation = NewInvocationMetrics(cfg, registry)
	return c
}

// RecordProxyCreated records one successful proxy synthesis.
//
// Parameters:
//   - strategy: synthesis strategy ("interface" or "class")
func (c *Collector) RecordProxyCreated(strategy string) {
	if !c.config.Enabled {
		return
	}
	c.synthesis.RecordCreated(strategy)
}

// RecordInvocation records one dispatched proxy invocation.
//
// Parameters:
//   - kind: dispatch slot the call was routed through ("direct", "advised", ...)
//   - seconds: wall time of the complete dispatch including advice
//   - chainDepth: number of interceptors that ran (0 on unadvised slots)
func (c *Collector) RecordInvocation(kind string, seconds float64, chainDepth int) {
	if !c.config.Enabled {
		return
	}
	c.invocation.RecordInvocation(kind, seconds, chainDepth)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
