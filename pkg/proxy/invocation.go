package proxy

import (
	"fmt"
	"reflect"

	"mercator-hq/callisto/pkg/advice"
)

// reflectiveInvocation is one in-flight intercepted call: the proxy it
// entered through, the acquired target, the live arguments, and the
// remaining interceptor chain driven by a cursor. It is constructed fresh
// per advised call and discarded when the call returns or fails.
type reflectiveInvocation struct {
	proxy  any
	target any
	method advice.Method
	args   []any
	chain  []advice.Interceptor

	// targetMethod is the method value bound to the acquired target, or the
	// zero Value for targetless proxies.
	targetMethod reflect.Value

	cursor  int
	invoked bool
}

var _ advice.Invocation = (*reflectiveInvocation)(nil)

// Proceed runs the next interceptor, passing the invocation itself as the
// continuation, or invokes the joinpoint once the chain is exhausted. The
// cursor never regresses; the joinpoint runs at most once per invocation.
func (inv *reflectiveInvocation) Proceed() ([]any, error) {
	if inv.cursor < len(inv.chain) {
		i := inv.chain[inv.cursor]
		inv.cursor++
		return i.Invoke(inv)
	}
	return inv.invokeJoinpoint()
}

// invokeJoinpoint performs the real method call on the target.
func (inv *reflectiveInvocation) invokeJoinpoint() ([]any, error) {
	if inv.invoked {
		return nil, fmt.Errorf("proxy: joinpoint for %s already invoked; Proceed called past the end of the chain", inv.method.Name)
	}
	inv.invoked = true

	if !inv.targetMethod.IsValid() {
		return nil, &SynthesisError{Reason: fmt.Sprintf(
			"method %s has no target backing and the chain did not short-circuit", inv.method.Name)}
	}

	in, err := toCallArgs(inv.method, inv.args)
	if err != nil {
		return nil, err
	}
	return fromResults(inv.method, inv.targetMethod.Call(in))
}

// Method describes the invoked method.
func (inv *reflectiveInvocation) Method() advice.Method { return inv.method }

// Args returns the live argument slice.
func (inv *reflectiveInvocation) Args() []any { return inv.args }

// SetArgs replaces the arguments; the count must match the parameter list.
// For variadic methods the tail stays flat, as on the Call surface.
func (inv *reflectiveInvocation) SetArgs(args []any) { inv.args = args }

// Target returns the object the joinpoint will run on; nil for targetless
// proxies.
func (inv *reflectiveInvocation) Target() any { return inv.target }

// Proxy returns the proxy the call entered through.
func (inv *reflectiveInvocation) Proxy() any { return inv.proxy }
