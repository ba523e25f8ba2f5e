// Package proxy is the method-interception engine: given a description of
// what to proxy, with what behavior, under what identity rules, it
// synthesizes a callable object that stands in for the target and routes
// every invocation through a matched, ordered interceptor chain.
//
// # Overview
//
// A Config describes the proxy: a target source (pkg/target), an ordered
// advisor list (pkg/advice), interface contracts, and the
// expose/frozen/optimize/opaque flags. A Factory turns the Config into an
// Instance:
//
//	cfg := proxy.NewConfig()
//	cfg.SetTarget(&service{})
//	cfg.AddInterceptor(loggingInterceptor)
//	cfg.Freeze()
//
//	p, err := proxy.NewFactory().GetProxy(cfg)
//	out, err := p.Call("Lookup", "key")
//
// The typed surface binds a caller-defined stub struct of func fields:
//
//	var stub struct{ Lookup func(string) (string, error) }
//	_ = p.Bind(&stub)
//	v, err := stub.Lookup("key")
//
// # Dispatch
//
// At synthesis time every intercepted method is classified once into a
// dispatch slot: generic advised, per-method fixed chain (static target,
// frozen config), plain forwarding with acquire/release, direct fast-path
// forwarding, administrative dispatch to the configuration, the identity
// handlers for Equal and Hash, or never-intercept. The classification is
// what lets the common no-advice case skip chain construction entirely.
//
// # Identity
//
// Proxies preserve object identity: methods returning the raw target have
// the result substituted with the proxy (unless the contract embeds
// RawTargetAccess), Equal is structural over the configuration, and Hash is
// derived from the target source alone so it stays stable while advice is
// added to a live proxy.
//
// # Concurrency
//
// A synthesized Instance is safe for concurrent invocation provided the
// underlying target is; the engine adds no synchronization beyond its own
// shared caches. Calls run to completion or fail — there are no timeouts
// or cancellation points in the engine itself; such policies belong in
// interceptors.
package proxy
