package proxy

import "fmt"

// FrozenConfigError is returned when a mutation is attempted on a frozen
// configuration. Freezing is a one-way promise the engine relies on for its
// static dispatch optimizations, so violations are structural errors.
type FrozenConfigError struct {
	// Op is the attempted mutation, e.g. "AddAdvisor".
	Op string
}

func (e *FrozenConfigError) Error() string {
	return fmt.Sprintf("proxy: %s on frozen configuration", e.Op)
}

// SynthesisError is returned when a proxy cannot be created from a
// configuration. It names the likely cause so misconfigurations are fixable
// from the message alone.
type SynthesisError struct {
	// Reason describes the likely cause (no advisors and trivial target,
	// non-interface contract, target class missing, empty method set).
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proxy: cannot create proxy: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("proxy: cannot create proxy: %s", e.Reason)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// UnknownMethodError is returned by the dynamic Call surface when the named
// method is not part of the proxy's intercepted method set.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("proxy: unknown method %q", e.Method)
}

// UndeclaredError wraps an error produced by an interceptor chain for a
// method whose signature declares no error result. The method's contract
// has no way to surface the error, so it is reported as a distinct failure
// rather than silently dropped. On the typed (bound stub) surface this is
// raised as a panic, mirroring unchecked propagation.
type UndeclaredError struct {
	Method string
	Err    error
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("proxy: undeclared error from %s: %v", e.Method, e.Err)
}

func (e *UndeclaredError) Unwrap() error { return e.Err }

// InvalidReturnError reports a nil value produced for a result slot whose
// declared type cannot hold nil (ints, structs, strings, ...). Advice must
// not violate the method's return contract; this is fatal for the call,
// never coerced to a zero value.
type InvalidReturnError struct {
	Method string
	Index  int
	Want   string
}

func (e *InvalidReturnError) Error() string {
	return fmt.Sprintf("proxy: nil return value for result %d of %s (declared %s)",
		e.Index, e.Method, e.Want)
}

// ArgumentError reports an argument slice that does not fit the invoked
// method's parameter list.
type ArgumentError struct {
	Method string
	Detail string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("proxy: bad arguments for %s: %s", e.Method, e.Detail)
}

// BindError reports a stub struct that cannot be bound to the proxy: a
// non-struct-pointer destination, a func field with no matching intercepted
// method, or a signature mismatch.
type BindError struct {
	Field  string
	Detail string
}

func (e *BindError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("proxy: bind failed: %s", e.Detail)
	}
	return fmt.Sprintf("proxy: bind failed for field %s: %s", e.Field, e.Detail)
}
