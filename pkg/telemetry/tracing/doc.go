// Package tracing provides OpenTelemetry bootstrap and span helpers for the
// proxy engine.
//
// # Overview
//
// New builds a Tracer from the tracing configuration: OTLP gRPC export,
// parent-based ratio sampling, W3C trace-context propagation, and the
// service resource attributes. With tracing disabled, New returns a noop
// tracer so call sites never branch on configuration.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    ...
//	}
//	defer tracer.Shutdown(context.Background())
//
// Spans for intercepted invocations carry the callisto.* attribute set, see
// InvocationAttributes. The interceptors package uses this tracer to open
// one span per advised call.
package tracing
