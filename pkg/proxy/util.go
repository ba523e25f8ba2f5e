package proxy

import (
	"fmt"
	"reflect"

	"mercator-hq/callisto/pkg/advice"
)

var (
	proxiedType   = reflect.TypeOf((*Proxied)(nil)).Elem()
	advisedType   = reflect.TypeOf((*Advised)(nil)).Elem()
	decoratedType = reflect.TypeOf((*Decorated)(nil)).Elem()
	rawAccessType = reflect.TypeOf((*RawTargetAccess)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

// CompleteProxiedContracts returns the full, ordered contract set a proxy
// built from cfg will carry: the user contracts first, then the Proxied
// marker, then the administrative Advised contract unless the configuration
// is opaque, then the Decorated marker when enabled. The administrative
// contracts form a fixed-size suffix, which ProxiedUserContracts relies on.
func CompleteProxiedContracts(cfg *Config) []reflect.Type {
	user := cfg.Contracts()
	out := make([]reflect.Type, 0, len(user)+3)
	out = append(out, user...)
	out = append(out, proxiedType)
	if !cfg.Opaque() {
		out = append(out, advisedType)
	}
	if cfg.Decorate() {
		out = append(out, decoratedType)
	}
	return out
}

// ProxiedUserContracts strips the administrative suffix from a completed
// contract set, returning only the user-declared contracts.
func ProxiedUserContracts(completed []reflect.Type) []reflect.Type {
	n := len(completed)
	for n > 0 {
		switch completed[n-1] {
		case proxiedType, advisedType, decoratedType:
			n--
		default:
			return completed[:n]
		}
	}
	return nil
}

// IsProxy reports whether v is a proxy produced by this engine.
func IsProxy(v any) bool {
	_, ok := v.(Proxied)
	return ok
}

// Unwrap returns the ultimate target class behind v, descending through
// decorated proxy layers. For non-proxies it returns v's own type.
func Unwrap(v any) reflect.Type {
	if d, ok := v.(Decorated); ok {
		return d.DecoratedClass()
	}
	return reflect.TypeOf(v)
}

// nilable reports whether t can hold an untyped nil.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// identical reports reference identity between a result and the target.
// Pointer-shaped kinds compare by address; comparable values fall back to
// ==; everything else is never identical.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		if va.Type() != vb.Type() || !va.Type().Comparable() {
			return false
		}
		return a == b
	}
}

// toCallArgs adapts a flat argument slice to the method's parameter list,
// converting assignable/convertible values and expanding nil into typed
// zero values. Variadic tails are accepted flat: Call("Sum", 1, 2, 3)
// against Sum(ns ...int).
func toCallArgs(m advice.Method, args []any) ([]reflect.Value, error) {
	mt := m.Type
	numIn := mt.NumIn()
	if mt.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, &ArgumentError{Method: m.Name,
				Detail: fmt.Sprintf("got %d args, want at least %d", len(args), numIn-1)}
		}
	} else if len(args) != numIn {
		return nil, &ArgumentError{Method: m.Name,
			Detail: fmt.Sprintf("got %d args, want %d", len(args), numIn)}
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var want reflect.Type
		if mt.IsVariadic() && i >= numIn-1 {
			want = mt.In(numIn - 1).Elem()
		} else {
			want = mt.In(i)
		}
		v, err := adaptValue(a, want)
		if err != nil {
			return nil, &ArgumentError{Method: m.Name,
				Detail: fmt.Sprintf("arg %d: %v", i, err)}
		}
		in[i] = v
	}
	return in, nil
}

// adaptValue converts a into a reflect.Value of type want.
func adaptValue(a any, want reflect.Type) (reflect.Value, error) {
	if a == nil {
		if !nilable(want) {
			return reflect.Value{}, fmt.Errorf("nil for non-nilable %s", want)
		}
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), want)
}

// fromResults converts reflect call results into the interceptor-facing
// shape: plain values with a trailing error, if declared, split out.
func fromResults(m advice.Method, out []reflect.Value) ([]any, error) {
	n := len(out)
	var err error
	if m.HasErrorResult() && n > 0 {
		if e := out[n-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
		out = out[:n-1]
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, err
}

// toTypedResults rebuilds the reflect result slice for a method signature
// from interceptor-facing results plus a separate error. Used by the bound
// stub surface, where results flow back through typed func values.
func toTypedResults(m advice.Method, results []any, callErr error) ([]reflect.Value, error) {
	mt := m.Type
	numOut := mt.NumOut()
	valueOuts := numOut
	if m.HasErrorResult() {
		valueOuts--
	}
	if callErr != nil && m.HasErrorResult() && len(results) == 0 {
		// Failed call with no results: zero value slots, error in its slot.
		out := make([]reflect.Value, numOut)
		for i := 0; i < valueOuts; i++ {
			out[i] = reflect.Zero(mt.Out(i))
		}
		out[numOut-1] = reflect.ValueOf(&callErr).Elem()
		return out, nil
	}
	if len(results) != valueOuts {
		return nil, &ArgumentError{Method: m.Name,
			Detail: fmt.Sprintf("chain produced %d results, method declares %d", len(results), valueOuts)}
	}

	out := make([]reflect.Value, numOut)
	for i := 0; i < valueOuts; i++ {
		want := mt.Out(i)
		if results[i] == nil {
			if !nilable(want) {
				return nil, &InvalidReturnError{Method: m.Name, Index: i, Want: want.String()}
			}
			out[i] = reflect.Zero(want)
			continue
		}
		v, err := adaptValue(results[i], want)
		if err != nil {
			return nil, &ArgumentError{Method: m.Name,
				Detail: fmt.Sprintf("result %d: %v", i, err)}
		}
		out[i] = v
	}
	if m.HasErrorResult() {
		if callErr != nil {
			out[numOut-1] = reflect.ValueOf(&callErr).Elem()
		} else {
			out[numOut-1] = reflect.Zero(errorType)
		}
	}
	return out, nil
}
