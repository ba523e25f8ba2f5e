package proxy

import (
	"fmt"
	"reflect"
)

// Bind fills the exported func fields of *stub (a pointer to a struct)
// with intercepting implementations, one per field, matched to the
// intercepted method set by field name. The filled stub is the typed
// calling surface of the proxy: invoking a field routes through the same
// dispatch table as Call.
//
// Field signatures must match the intercepted method exactly. Methods
// without an error result have no way to surface interceptor errors, so on
// this surface contract violations (undeclared errors, nil for a
// non-nilable result) are raised as panics carrying the corresponding
// typed error.
//
// Example usage:
//
//	var stub struct {
//		Bar func() int
//	}
//	if err := p.Bind(&stub); err != nil { ... }
//	n := stub.Bar()
func (p *Instance) Bind(stub any) error {
	v := reflect.ValueOf(stub)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return &BindError{Detail: "destination must be a pointer to a struct of func fields"}
	}
	elem := v.Elem()
	t := elem.Type()

	bound := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Func {
			continue
		}
		mi, ok := p.table.methods[f.Name]
		if !ok {
			return &BindError{Field: f.Name, Detail: "no intercepted method with this name"}
		}
		if f.Type != mi.m.Type {
			return &BindError{Field: f.Name, Detail: fmt.Sprintf(
				"signature %s does not match intercepted method %s", f.Type, mi.m.Type)}
		}
		elem.Field(i).Set(p.makeBound(mi, f.Type))
		bound++
	}
	if bound == 0 {
		return &BindError{Detail: "no exported func fields to bind"}
	}
	return nil
}

// makeBound synthesizes the typed intercepting func for one method.
func (p *Instance) makeBound(mi *methodInfo, ft reflect.Type) reflect.Value {
	return reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := flattenArgs(ft, in)
		results, err := p.dispatch(mi, args, true)
		if err != nil && !mi.m.HasErrorResult() {
			// No error slot to carry it; propagate as unchecked.
			panic(err)
		}
		out, convErr := toTypedResults(mi.m, results, err)
		if convErr != nil {
			panic(convErr)
		}
		return out
	})
}

// flattenArgs converts MakeFunc inputs to the flat argument shape the
// dispatch path uses. MakeFunc hands the variadic tail over as a slice;
// dispatch and Call keep it flat.
func flattenArgs(ft reflect.Type, in []reflect.Value) []any {
	if !ft.IsVariadic() {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		return args
	}
	n := len(in) - 1
	tail := in[n]
	args := make([]any, 0, n+tail.Len())
	for i := 0; i < n; i++ {
		args = append(args, in[i].Interface())
	}
	for i := 0; i < tail.Len(); i++ {
		args = append(args, tail.Index(i).Interface())
	}
	return args
}
