// Package metrics provides Prometheus instrumentation for the proxy engine.
//
// # Overview
//
// The Collector aggregates two metric groups:
//
//   - Synthesis: proxies created, labelled by strategy
//   - Invocation: dispatch counts, durations, and interceptor chain depth,
//     labelled by dispatch kind
//
// Collector implements proxy.Observer, so wiring is a single factory option:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	factory := proxy.NewFactory(proxy.WithObserver(collector))
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Performance
//
// Recording sits on the invocation hot path, so it stays allocation-light:
// pre-registered metric vectors, no label formatting, and an Enabled gate
// that reduces a disabled collector to two branch instructions.
package metrics
