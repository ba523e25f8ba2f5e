package advice

import "reflect"

// Method identifies one intercepted method: its name, its signature (a func
// type with the receiver stripped), and the type that declared it — an
// interface contract for interface proxies, the concrete target type for
// class proxies.
type Method struct {
	Name  string
	Type  reflect.Type
	Owner reflect.Type
}

// String returns "Owner.Name" for diagnostics and span names.
func (m Method) String() string {
	if m.Owner == nil {
		return m.Name
	}
	return m.Owner.String() + "." + m.Name
}

// HasErrorResult reports whether the method's last result is an error.
// Interceptor errors on methods without an error result violate the method
// contract and are wrapped by the engine.
func (m Method) HasErrorResult() bool {
	n := m.Type.NumOut()
	return n > 0 && m.Type.Out(n-1) == errorType
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Invocation is one in-flight intercepted call. Interceptors receive it,
// may inspect or replace arguments, and drive the remaining chain via
// Proceed. Implementations are single-use and not safe for concurrent use;
// they live for exactly one call.
type Invocation interface {
	// Proceed invokes the next interceptor in the chain, or the real method
	// once the chain is exhausted. An interceptor that does not call Proceed
	// short-circuits the call with its own result.
	Proceed() ([]any, error)

	// Method describes the method being invoked.
	Method() Method

	// Args returns the live argument slice. Mutating elements is visible to
	// later interceptors and the target.
	Args() []any

	// SetArgs replaces the argument slice. The replacement must match the
	// method's parameter count.
	SetArgs(args []any)

	// Target returns the object the joinpoint will be invoked on. May be nil
	// for targetless proxies.
	Target() any

	// Proxy returns the proxy object through which the call entered.
	Proxy() any
}

// Interceptor is around advice: it wraps an invocation and returns the
// results the caller will see. Results exclude a trailing error value, which
// travels separately.
type Interceptor interface {
	Invoke(inv Invocation) ([]any, error)
}

// InterceptorFunc adapts a plain function to the Interceptor interface.
type InterceptorFunc func(inv Invocation) ([]any, error)

// Invoke calls f.
func (f InterceptorFunc) Invoke(inv Invocation) ([]any, error) { return f(inv) }
