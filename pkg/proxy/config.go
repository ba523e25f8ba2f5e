package proxy

import (
	"fmt"
	"reflect"
	"sync"

	"mercator-hq/callisto/pkg/advice"
	"mercator-hq/callisto/pkg/target"
)

// Advised is the administrative interface every proxy exposes unless built
// with the Opaque flag. It lets collaborators introspect — and, while the
// configuration is not frozen, reconfigure — a live proxy.
type Advised interface {
	// TargetSource returns the source supplying the invocation target.
	TargetSource() target.TargetSource

	// SetTargetSource replaces the target source. Fails once frozen.
	SetTargetSource(ts target.TargetSource) error

	// Advisors returns a copy of the ordered advisor list.
	Advisors() []advice.Advisor

	// AddAdvisor appends an advisor. Fails once frozen.
	AddAdvisor(a advice.Advisor) error

	// RemoveAdvisor removes the advisor at the given index. Fails once frozen.
	RemoveAdvisor(index int) error

	// Contracts returns the user-declared interface contracts being proxied.
	Contracts() []reflect.Type

	// Frozen reports whether the configuration is sealed against mutation.
	Frozen() bool

	// ExposeProxy reports whether calls publish the proxy into callctx.
	ExposeProxy() bool
}

// Proxied marks an object as a proxy produced by this engine. Collaborators
// detect and unwrap proxies by asserting this interface instead of probing
// with reflection. Only *Instance implements it.
type Proxied interface {
	proxied()
}

// Decorated is the optional nested-proxy unwrapping marker: it exposes the
// ultimate target class behind any number of proxy layers.
type Decorated interface {
	DecoratedClass() reflect.Type
}

// RawTargetAccess is a marker a user contract may embed to opt its methods
// out of return-this substitution: results identical to the raw target are
// handed back unmodified instead of being replaced by the proxy.
type RawTargetAccess interface {
	RawTargetAccess()
}

// Config describes what to proxy, with what behavior, under what identity
// rules: a target source, an ordered advisor list, interface contracts, and
// the expose/frozen/optimize/opaque flags. A Config is mutable until Freeze
// is called; afterwards every mutation fails with *FrozenConfigError.
//
// Config implements Advised; synthesized proxies delegate their
// administrative methods here.
type Config struct {
	mu        sync.RWMutex
	source    target.TargetSource
	advisors  []advice.Advisor
	contracts []reflect.Type
	resolver  advice.ChainResolver

	exposeProxy bool
	frozen      bool
	optimize    bool
	opaque      bool
	decorate    bool

	// excluded lists method names the proxy must never intercept.
	excluded map[string]bool

	// chainCache memoizes resolved interceptor chains per method name.
	// Dropped whenever the advisor list changes.
	chainCache map[string][]advice.Interceptor
}

// NewConfig creates an empty configuration with the default chain resolver
// and an empty target source.
func NewConfig() *Config {
	return &Config{
		source:     target.NewEmpty(),
		resolver:   advice.DefaultChainResolver{},
		excluded:   make(map[string]bool),
		chainCache: make(map[string][]advice.Interceptor),
	}
}

// TargetSource returns the configured source.
func (c *Config) TargetSource() target.TargetSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// SetTargetSource replaces the target source.
func (c *Config) SetTargetSource(ts target.TargetSource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "SetTargetSource"}
	}
	if ts == nil {
		ts = target.NewEmpty()
	}
	c.source = ts
	return nil
}

// SetTarget is shorthand for SetTargetSource(target.NewSingleton(obj)).
func (c *Config) SetTarget(obj any) error {
	return c.SetTargetSource(target.NewSingleton(obj))
}

// Advisors returns a copy of the ordered advisor list.
func (c *Config) Advisors() []advice.Advisor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]advice.Advisor, len(c.advisors))
	copy(out, c.advisors)
	return out
}

// AddAdvisor appends an advisor and invalidates memoized chains.
func (c *Config) AddAdvisor(a advice.Advisor) error {
	if a == nil {
		return fmt.Errorf("proxy: nil advisor")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "AddAdvisor"}
	}
	c.advisors = append(c.advisors, a)
	c.adviceChangedLocked()
	return nil
}

// AddInterceptor appends an unconditionally matching interceptor.
func (c *Config) AddInterceptor(i advice.Interceptor) error {
	return c.AddAdvisor(advice.NewAdvisor(i, nil))
}

// RemoveAdvisor removes the advisor at index.
func (c *Config) RemoveAdvisor(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "RemoveAdvisor"}
	}
	if index < 0 || index >= len(c.advisors) {
		return fmt.Errorf("proxy: advisor index %d out of range [0,%d)", index, len(c.advisors))
	}
	c.advisors = append(c.advisors[:index], c.advisors[index+1:]...)
	c.adviceChangedLocked()
	return nil
}

// AddContract declares an interface contract the proxy must cover. The
// contract fixes the intercepted method set for interface-strategy proxies.
func (c *Config) AddContract(iface reflect.Type) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("proxy: contract must be an interface type, got %v", iface)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "AddContract"}
	}
	for _, existing := range c.contracts {
		if existing == iface {
			return nil
		}
	}
	c.contracts = append(c.contracts, iface)
	return nil
}

// Contracts returns the declared user contracts in registration order.
func (c *Config) Contracts() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]reflect.Type, len(c.contracts))
	copy(out, c.contracts)
	return out
}

// ExcludeMethod marks a method name as never intercepted: the dispatch
// table routes it to the no-override slot.
func (c *Config) ExcludeMethod(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "ExcludeMethod"}
	}
	c.excluded[name] = true
	return nil
}

// SetExposeProxy controls whether invocations publish the proxy into
// callctx for the duration of the call.
func (c *Config) SetExposeProxy(v bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "SetExposeProxy"}
	}
	c.exposeProxy = v
	return nil
}

// SetOptimize permits eager precomputation at synthesis time (static target
// caching, prebound method values).
func (c *Config) SetOptimize(v bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "SetOptimize"}
	}
	c.optimize = v
	return nil
}

// SetOpaque suppresses the administrative Advised surface on the proxy.
func (c *Config) SetOpaque(v bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "SetOpaque"}
	}
	c.opaque = v
	return nil
}

// SetDecorate enables the Decorated unwrapping marker on the proxy.
func (c *Config) SetDecorate(v bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "SetDecorate"}
	}
	c.decorate = v
	return nil
}

// SetChainResolver replaces the chain resolver. The default resolver
// suits almost all uses; this hook exists for containers that order or
// deduplicate advisors themselves.
func (c *Config) SetChainResolver(r advice.ChainResolver) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return &FrozenConfigError{Op: "SetChainResolver"}
	}
	if r == nil {
		r = advice.DefaultChainResolver{}
	}
	c.resolver = r
	c.adviceChangedLocked()
	return nil
}

// Freeze seals the configuration. Freezing is irreversible and is the
// precondition for the fixed-chain and direct-dispatch fast paths.
func (c *Config) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Frozen reports whether the configuration is sealed.
func (c *Config) Frozen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frozen
}

// ExposeProxy reports the expose-proxy flag.
func (c *Config) ExposeProxy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.exposeProxy
}

// Optimize reports the optimize flag.
func (c *Config) Optimize() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.optimize
}

// Opaque reports the opaque flag.
func (c *Config) Opaque() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opaque
}

// Decorate reports whether the Decorated marker is enabled.
func (c *Config) Decorate() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.decorate
}

func (c *Config) excludedMethod(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.excluded[name]
}

// InterceptorsFor resolves the ordered interceptor chain applicable to m,
// memoized per method name. The cache is dropped whenever the advisor list
// changes, so unfrozen configurations observe advice mutations on the next
// call.
func (c *Config) InterceptorsFor(m advice.Method, targetType reflect.Type) []advice.Interceptor {
	c.mu.RLock()
	if chain, ok := c.chainCache[m.Name]; ok {
		c.mu.RUnlock()
		return chain
	}
	advisors := c.advisors
	resolver := c.resolver
	c.mu.RUnlock()

	chain := resolver.Chain(advisors, m, targetType)

	c.mu.Lock()
	c.chainCache[m.Name] = chain
	c.mu.Unlock()
	return chain
}

// adviceChangedLocked drops memoized chains. Callers hold c.mu.
func (c *Config) adviceChangedLocked() {
	c.chainCache = make(map[string][]advice.Interceptor)
}

func (c *Config) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("proxy.Config{source: %v, advisors: %d, contracts: %d, frozen: %t}",
		c.source, len(c.advisors), len(c.contracts), c.frozen)
}

// Ensure Config satisfies the administrative surface.
var _ Advised = (*Config)(nil)
