package proxy

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"mercator-hq/callisto/pkg/advice"
	"mercator-hq/callisto/pkg/proxy/callctx"
	"mercator-hq/callisto/pkg/target"
)

// Instance is a synthesized proxy. From the caller's perspective it stands
// in for the target: every invocation entering through Call or a bound stub
// is routed through the dispatch table to its assigned slot.
//
// Instance implements the administrative Advised surface (delegating to its
// configuration), the Proxied marker, and the Decorated unwrapping marker.
type Instance struct {
	cfg       *Config
	strategy  string
	table     *dispatchTable
	contracts []reflect.Type

	// staticTarget is the cached target when the source is static, valid
	// only while staticSrc is still the configured source; administrative
	// retargeting installs a new source and bypasses the cache.
	staticTarget any
	staticSrc    target.TargetSource
	hasStatic    bool

	salt     uint64
	logger   *slog.Logger
	observer Observer
}

// Call invokes an intercepted method by name on the dynamic surface.
// Results are the method's declared values, with a declared trailing error
// split into the second return. Errors an interceptor produces for a
// method that declares none are returned as *UndeclaredError.
func (p *Instance) Call(name string, args ...any) ([]any, error) {
	mi, ok := p.table.methods[name]
	if !ok {
		return nil, &UnknownMethodError{Method: name}
	}
	return p.dispatch(mi, args, false)
}

// Methods returns the names of the intercepted method set in discovery
// order.
func (p *Instance) Methods() []string {
	out := make([]string, len(p.table.order))
	copy(out, p.table.order)
	return out
}

// DispatchKindOf reports the slot the named method is routed to, for
// introspection and diagnostics.
func (p *Instance) DispatchKindOf(name string) (DispatchKind, bool) {
	mi, ok := p.table.methods[name]
	if !ok {
		return 0, false
	}
	return mi.kind, true
}

// dispatch routes one invocation to its slot. typed reports whether the
// call entered through a bound stub, which constrains return-this
// substitution to assignable result types.
func (p *Instance) dispatch(mi *methodInfo, args []any, typed bool) ([]any, error) {
	start := time.Now()
	results, err := p.invokeSlot(mi, args, typed)
	if p.observer != nil {
		p.observer.RecordInvocation(mi.kind.String(), time.Since(start).Seconds(), p.resolvedChainDepth(mi))
	}
	return results, err
}

// resolvedChainDepth reports how many interceptors the slot runs. Fixed
// chains were baked at synthesis; generic advised slots resolve through
// the memoized per-method cache, so this never re-walks the advisors.
func (p *Instance) resolvedChainDepth(mi *methodInfo) int {
	switch mi.kind {
	case KindFixedChain:
		return len(mi.chain)
	case KindAdvised:
		return len(p.cfg.InterceptorsFor(mi.m, p.cfg.TargetSource().TargetClass()))
	default:
		return 0
	}
}

// ChainDepthOf reports the interceptor chain length currently resolved for
// the named method, and whether the method is intercepted at all.
func (p *Instance) ChainDepthOf(name string) (int, bool) {
	mi, ok := p.table.methods[name]
	if !ok {
		return 0, false
	}
	return p.resolvedChainDepth(mi), true
}

func (p *Instance) invokeSlot(mi *methodInfo, args []any, typed bool) ([]any, error) {
	switch mi.kind {
	case KindDirect:
		return p.invokeDirect(mi, args)
	case KindPlainTarget:
		return p.invokePlain(mi, args, typed)
	case KindAdvised, KindFixedChain:
		return p.invokeAdvised(mi, args, typed)
	case KindConfig:
		return p.invokeConfig(mi, args)
	case KindEqual:
		if len(args) != 1 {
			return nil, &ArgumentError{Method: mi.m.Name, Detail: "Equal takes exactly one argument"}
		}
		return []any{p.Equal(args[0])}, nil
	case KindHash:
		return []any{p.Hash()}, nil
	case KindNoOverride:
		return zeroResults(mi.m), nil
	default:
		return nil, fmt.Errorf("proxy: method %s has no dispatch slot", mi.m.Name)
	}
}

// invokeDirect is the fast path: static target, frozen configuration, no
// advice, no identity substitution possible. No invocation object is
// allocated; the call is pure forwarding.
func (p *Instance) invokeDirect(mi *methodInfo, args []any) ([]any, error) {
	m := mi.boundMethod
	if !m.IsValid() {
		m = methodOn(p.staticTarget, mi.m.Name)
		if !m.IsValid() {
			return nil, &SynthesisError{Reason: fmt.Sprintf("method %s has no target backing", mi.m.Name)}
		}
	}
	in, err := toCallArgs(mi.m, args)
	if err != nil {
		return nil, err
	}
	return fromResults(mi.m, m.Call(in))
}

// invokePlain forwards without advice but through the full handler: the
// target is acquired and released around the call, the proxy is published
// when expose-proxy is set, and return-this substitution applies.
func (p *Instance) invokePlain(mi *methodInfo, args []any, typed bool) ([]any, error) {
	tgt, release, err := p.acquireTarget()
	if err != nil {
		return nil, err
	}
	defer release()

	if p.cfg.ExposeProxy() {
		defer callctx.Set(p)()
	}

	m := methodOn(tgt, mi.m.Name)
	if !m.IsValid() {
		return nil, &SynthesisError{Reason: fmt.Sprintf("method %s has no target backing", mi.m.Name)}
	}
	in, err := toCallArgs(mi.m, args)
	if err != nil {
		return nil, err
	}
	results, callErr := fromResults(mi.m, m.Call(in))
	return p.postProcess(mi, tgt, results, callErr, typed)
}

// invokeAdvised builds a fresh invocation and drives the interceptor chain:
// the baked chain for fixed-chain slots, the memoized configuration chain
// otherwise.
func (p *Instance) invokeAdvised(mi *methodInfo, args []any, typed bool) ([]any, error) {
	tgt, release, err := p.acquireTarget()
	if err != nil {
		return nil, err
	}
	defer release()

	chain := mi.chain
	if mi.kind == KindAdvised {
		chain = p.cfg.InterceptorsFor(mi.m, p.cfg.TargetSource().TargetClass())
	}

	if p.cfg.ExposeProxy() {
		defer callctx.Set(p)()
	}

	inv := &reflectiveInvocation{
		proxy:        p,
		target:       tgt,
		method:       mi.m,
		args:         args,
		chain:        chain,
		targetMethod: methodOn(tgt, mi.m.Name),
	}
	results, callErr := inv.Proceed()
	return p.postProcess(mi, tgt, results, callErr, typed)
}

// invokeConfig dispatches an administrative method to the configuration
// object instead of the target.
func (p *Instance) invokeConfig(mi *methodInfo, args []any) ([]any, error) {
	m := reflect.ValueOf(p.cfg).MethodByName(mi.m.Name)
	if !m.IsValid() {
		return nil, &UnknownMethodError{Method: mi.m.Name}
	}
	in, err := toCallArgs(mi.m, args)
	if err != nil {
		return nil, err
	}
	return fromResults(mi.m, m.Call(in))
}

// acquireTarget returns the invocation target and a release func. Static
// sources use the synthesis-time cache with a no-op release, but only while
// the configured source is still the cached one: a retarget through the
// administrative surface installs a new source and must take effect on the
// next call. Dynamic sources pair every successful acquisition with exactly
// one release, run deferred so error paths release too.
func (p *Instance) acquireTarget() (any, func(), error) {
	src := p.cfg.TargetSource()
	if p.hasStatic && src == p.staticSrc {
		return p.staticTarget, func() {}, nil
	}
	tgt, err := src.GetTarget()
	if err != nil {
		return nil, nil, fmt.Errorf("proxy: target acquisition failed: %w", err)
	}
	if src.Static() {
		return tgt, func() {}, nil
	}
	return tgt, func() { _ = src.ReleaseTarget(tgt) }, nil
}

// postProcess applies the engine's return-value contract to every handler
// outcome: undeclared-error wrapping, return-this substitution, and
// nil-for-non-nilable rejection.
func (p *Instance) postProcess(mi *methodInfo, tgt any, results []any, callErr error, typed bool) ([]any, error) {
	if callErr != nil && !mi.m.HasErrorResult() {
		return nil, &UndeclaredError{Method: mi.m.Name, Err: callErr}
	}

	mt := mi.m.Type
	valueOuts := mt.NumOut()
	if mi.m.HasErrorResult() {
		valueOuts--
	}
	for i := 0; i < len(results) && i < valueOuts; i++ {
		if results[i] == nil {
			if !nilable(mt.Out(i)) {
				return nil, &InvalidReturnError{Method: mi.m.Name, Index: i, Want: mt.Out(i).String()}
			}
			continue
		}
		if !mi.raw && tgt != nil && identical(results[i], tgt) {
			if !typed || reflect.TypeOf(p).AssignableTo(mt.Out(i)) {
				results[i] = p
			}
		}
	}
	return results, callErr
}

// Equal implements identity-aware proxy equality: same instance, or same
// synthesis strategy with a structurally equal configuration.
func (p *Instance) Equal(other any) bool {
	if o, ok := other.(*Instance); ok {
		if o == p {
			return true
		}
		return p.strategy == o.strategy && configsEquivalent(p.cfg, o.cfg)
	}
	return false
}

// Hash returns the proxy's stable hash: the strategy salt combined with
// the target source hash. It is independent of the advisor list, so it
// does not drift as advice is added to a live proxy.
func (p *Instance) Hash() uint64 {
	return p.salt*hashMultiplier + sourceHash(p.cfg.TargetSource())
}

// TargetSource implements Advised.
func (p *Instance) TargetSource() target.TargetSource { return p.cfg.TargetSource() }

// SetTargetSource implements Advised.
func (p *Instance) SetTargetSource(ts target.TargetSource) error { return p.cfg.SetTargetSource(ts) }

// Advisors implements Advised.
func (p *Instance) Advisors() []advice.Advisor { return p.cfg.Advisors() }

// AddAdvisor implements Advised.
func (p *Instance) AddAdvisor(a advice.Advisor) error { return p.cfg.AddAdvisor(a) }

// RemoveAdvisor implements Advised.
func (p *Instance) RemoveAdvisor(index int) error { return p.cfg.RemoveAdvisor(index) }

// Contracts implements Advised: the user-declared contracts.
func (p *Instance) Contracts() []reflect.Type { return p.cfg.Contracts() }

// ProxiedContracts returns the completed contract set, administrative
// suffix included.
func (p *Instance) ProxiedContracts() []reflect.Type {
	out := make([]reflect.Type, len(p.contracts))
	copy(out, p.contracts)
	return out
}

// Frozen implements Advised.
func (p *Instance) Frozen() bool { return p.cfg.Frozen() }

// Strategy returns the synthesis strategy name, StrategyInterface or
// StrategyClass.
func (p *Instance) Strategy() string { return p.strategy }

// ExposeProxy implements Advised.
func (p *Instance) ExposeProxy() bool { return p.cfg.ExposeProxy() }

// proxied implements the Proxied marker.
func (p *Instance) proxied() {}

// DecoratedClass implements Decorated: the ultimate target class behind
// any number of nested proxy layers.
func (p *Instance) DecoratedClass() reflect.Type {
	if p.hasStatic {
		if d, ok := p.staticTarget.(Decorated); ok {
			return d.DecoratedClass()
		}
	}
	return p.cfg.TargetSource().TargetClass()
}

func (p *Instance) String() string {
	return fmt.Sprintf("callisto proxy (%s) for %v", p.strategy, p.cfg.TargetSource())
}

// zeroResults builds the declared zero values for a no-override method.
func zeroResults(m advice.Method) []any {
	n := m.Type.NumOut()
	if m.HasErrorResult() {
		n--
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = reflect.Zero(m.Type.Out(i)).Interface()
	}
	return out
}

// methodOn looks up a method value bound to tgt, or the zero Value when
// tgt is nil or lacks the method.
func methodOn(tgt any, name string) reflect.Value {
	if tgt == nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(tgt).MethodByName(name)
}

var (
	_ Advised   = (*Instance)(nil)
	_ Proxied   = (*Instance)(nil)
	_ Decorated = (*Instance)(nil)
)
