// Package telemetry provides observability for callisto proxies.
//
// # Overview
//
// The telemetry subpackages translate the telemetry configuration section
// into concrete instruments: structured logging via slog, Prometheus
// metrics, and OpenTelemetry distributed tracing. The proxy engine itself
// only depends on slog and the proxy.Observer interface; everything else
// is wired in by the host application.
//
// # Components
//
//   - logging: slog logger construction from configuration
//   - metrics: Prometheus collector implementing proxy.Observer
//   - tracing: OpenTelemetry tracer with OTLP gRPC export
//
// # Usage
//
//	logger, _ := logging.New(&cfg.Telemetry.Logging, logging.Options{})
//	slog.SetDefault(logger)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	factory := proxy.NewFactory(proxy.WithObserver(collector))
//
//	tracer, _ := tracing.New(context.Background(), &cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//
// Proxy invocations never log or trace argument and result values; only
// method names, dispatch kinds, and timings are recorded.
package telemetry
