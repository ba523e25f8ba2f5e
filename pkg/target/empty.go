package target

import "reflect"

// EmptyTargetSource is the canonical targetless source, used when a proxy is
// built from advice and interface contracts alone. GetTarget returns nil and
// the source is considered static (there is nothing to acquire per call).
type EmptyTargetSource struct{}

// NewEmpty returns the shared empty source.
func NewEmpty() *EmptyTargetSource { return &EmptyTargetSource{} }

// TargetClass returns nil: there is no target type.
func (*EmptyTargetSource) TargetClass() reflect.Type { return nil }

// Static returns true; the (absent) target never changes.
func (*EmptyTargetSource) Static() bool { return true }

// GetTarget returns (nil, nil): an unbound target.
func (*EmptyTargetSource) GetTarget() (any, error) { return nil, nil }

// ReleaseTarget is a no-op.
func (*EmptyTargetSource) ReleaseTarget(any) error { return nil }

// TargetHash is constant for all empty sources, so two advice-only proxies
// with otherwise equal configurations hash alike.
func (*EmptyTargetSource) TargetHash() uint64 { return 0 }

func (*EmptyTargetSource) String() string { return "EmptyTargetSource" }
