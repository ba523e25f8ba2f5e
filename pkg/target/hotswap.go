package target

import (
	"fmt"
	"hash/fnv"
	"reflect"
	"sync"
)

// HotSwappableTargetSource holds a replaceable target. Swapping takes effect
// for all subsequent invocations on any proxy built over this source, which
// is the standard way to retarget a live proxy without rebuilding it.
//
// The source is dynamic: the engine acquires the current target on every
// call, so an in-flight invocation keeps the instance it started with even
// if a swap happens mid-call.
type HotSwappableTargetSource struct {
	mu     sync.RWMutex
	target any
	class  reflect.Type
}

// NewHotSwappable creates a hot-swappable source with the given initial
// target. It panics if initial is nil.
func NewHotSwappable(initial any) *HotSwappableTargetSource {
	if initial == nil {
		panic("target: NewHotSwappable called with nil initial target")
	}
	return &HotSwappableTargetSource{
		target: initial,
		class:  reflect.TypeOf(initial),
	}
}

// TargetClass returns the type of the initial target. Swaps must supply
// instances assignable to this type.
func (s *HotSwappableTargetSource) TargetClass() reflect.Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.class
}

// Static returns false: the target may change between invocations.
func (s *HotSwappableTargetSource) Static() bool { return false }

// GetTarget returns the current target.
func (s *HotSwappableTargetSource) GetTarget() (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target, nil
}

// ReleaseTarget is a no-op; instances are not pooled.
func (s *HotSwappableTargetSource) ReleaseTarget(any) error { return nil }

// Swap replaces the target and returns the previous one. The new target must
// be assignable to the source's target class so existing proxies stay valid.
func (s *HotSwappableTargetSource) Swap(newTarget any) (any, error) {
	if newTarget == nil {
		return nil, fmt.Errorf("target: cannot swap in nil target")
	}
	nt := reflect.TypeOf(newTarget)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !nt.AssignableTo(s.class) {
		return nil, fmt.Errorf("target: swap type %s is not assignable to %s", nt, s.class)
	}
	old := s.target
	s.target = newTarget
	return old, nil
}

// TargetHash is derived from the target class only, so the proxy identity
// hash stays stable across swaps.
func (s *HotSwappableTargetSource) TargetHash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s.TargetClass().String()))
	return h.Sum64()
}

func (s *HotSwappableTargetSource) String() string {
	return fmt.Sprintf("HotSwappableTargetSource(%s)", s.TargetClass())
}
