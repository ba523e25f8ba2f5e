package target

import "reflect"

// TargetSource supplies the object that intercepted calls are ultimately
// invoked on. The proxy engine never holds a target directly; it always goes
// through a TargetSource so that pooling, hot swapping, and scoped targets
// can be plugged in without the engine knowing.
type TargetSource interface {
	// TargetClass returns the concrete type the proxy is generated against.
	// It must not return nil for class-based proxying; a nil result is only
	// acceptable for targetless (advice-only) sources.
	TargetClass() reflect.Type

	// Static reports whether every acquisition returns the same instance.
	// When true, the engine may cache the target once and skip release calls.
	Static() bool

	// GetTarget acquires a target instance. It may return (nil, nil) for an
	// unbound optional target, or an error when acquisition fails (for
	// example, pool exhaustion). For non-static sources this is called fresh
	// for every invocation.
	GetTarget() (any, error)

	// ReleaseTarget returns a previously acquired instance to the source.
	// It must be safe to call with a nil target and must be invoked by
	// callers in a deferred block so release happens on error paths too.
	ReleaseTarget(t any) error
}

// Swapper is implemented by target sources whose target can be replaced on a
// live proxy. Swap returns the previous target.
type Swapper interface {
	Swap(newTarget any) (any, error)
}

// Hasher is implemented by target sources that define their own stable hash.
// The proxy identity hash is derived from this value; sources that do not
// implement Hasher fall back to a hash of their target class name.
type Hasher interface {
	TargetHash() uint64
}
