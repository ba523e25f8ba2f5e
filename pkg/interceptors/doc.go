// Package interceptors provides ready-made advice for common cross-cutting
// concerns: structured logging, Prometheus metrics, and OpenTelemetry spans.
//
// # Overview
//
// Each interceptor implements advice.Interceptor and is registered on a
// proxy configuration like any other advice:
//
//	cfg := proxy.NewConfig()
//	cfg.SetTarget(svc)
//	cfg.AddInterceptor(interceptors.NewLogging(nil))
//
// All interceptors are transparent: they proceed down the chain, observe the
// outcome, and return results and errors unchanged. Audit recording lives in
// the audit subpackage.
//
// # Context propagation
//
// Interceptors that need a context.Context (tracing) look for one in the
// first argument position of the intercepted call. When present it is used
// as the span parent and replaced with the span context for the rest of the
// chain; when absent the span starts from the background context.
package interceptors
