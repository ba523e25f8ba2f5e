// Package target defines the TargetSource contract: the abstraction that
// supplies the object ultimately receiving an intercepted method call.
//
// # Overview
//
// A TargetSource decouples the proxy engine from target lifecycle. A source
// may hand out the same instance on every acquisition (static sources, which
// the engine is free to cache) or a different instance per call (dynamic
// sources such as pools or hot-swappable holders, for which the engine
// acquires and releases around every invocation).
//
// Implementations provided:
//
//   - SingletonTargetSource: wraps one fixed object (static)
//   - HotSwappableTargetSource: target replaceable on a live proxy (dynamic)
//   - PoolTargetSource: channel-backed instance pool (dynamic)
//   - EmptyTargetSource: no target at all, for advice-only proxies
//
// # Contract
//
// If Static returns true the engine may call GetTarget once, cache the
// result, and never call ReleaseTarget. If Static returns false, every
// successful GetTarget is paired with exactly one ReleaseTarget, including
// on error paths.
//
// # Thread Safety
//
// All provided implementations are safe for concurrent use.
package target
