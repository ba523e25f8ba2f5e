package target

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// SingletonTargetSource is the simplest static source: it wraps one fixed
// object and hands it out on every acquisition.
type SingletonTargetSource struct {
	target any
	class  reflect.Type
}

// NewSingleton creates a static source around the given object.
// It panics if target is nil; use NewEmpty for targetless proxies.
func NewSingleton(target any) *SingletonTargetSource {
	if target == nil {
		panic("target: NewSingleton called with nil target")
	}
	return &SingletonTargetSource{
		target: target,
		class:  reflect.TypeOf(target),
	}
}

// TargetClass returns the concrete type of the wrapped object.
func (s *SingletonTargetSource) TargetClass() reflect.Type { return s.class }

// Static always returns true.
func (s *SingletonTargetSource) Static() bool { return true }

// GetTarget returns the wrapped object. It never fails.
func (s *SingletonTargetSource) GetTarget() (any, error) { return s.target, nil }

// ReleaseTarget is a no-op for singleton sources.
func (s *SingletonTargetSource) ReleaseTarget(any) error { return nil }

// TargetHash returns a stable hash derived from the wrapped object's type
// and, for pointer targets, its address. The hash never changes over the
// lifetime of the source.
func (s *SingletonTargetSource) TargetHash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s.class.String()))
	v := reflect.ValueOf(s.target)
	if v.Kind() == reflect.Pointer {
		_, _ = fmt.Fprintf(h, "@%x", v.Pointer())
	}
	return h.Sum64()
}

func (s *SingletonTargetSource) String() string {
	return fmt.Sprintf("SingletonTargetSource(%s)", s.class)
}
