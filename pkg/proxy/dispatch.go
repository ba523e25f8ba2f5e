package proxy

import (
	"fmt"
	"reflect"

	"mercator-hq/callisto/pkg/advice"
)

// DispatchKind identifies the callback slot a method is routed to. The
// classification runs once per proxy at synthesis time, never per call;
// skipping chain construction for methods that cannot have advice is the
// principal performance lever of the engine.
type DispatchKind int

const (
	// KindAdvised is the generic dynamic handler: resolve the chain, build
	// an invocation, drive it. The only handler able to publish the proxy
	// into callctx, so expose-proxy configurations route everything here.
	KindAdvised DispatchKind = iota

	// KindFixedChain is the per-method baked-chain handler, available when
	// the target is static and the configuration frozen: the chain is
	// resolved once at synthesis and never again.
	KindFixedChain

	// KindPlainTarget forwards to the target with no advice but through a
	// full handler, because the target must be acquired and released per
	// call or the result may need return-this substitution.
	KindPlainTarget

	// KindDirect is the cheapest path: static target, frozen config, no
	// advice, no possible identity substitution. Pure forwarding with no
	// invocation allocated.
	KindDirect

	// KindConfig routes administrative (Advised) methods to the
	// configuration object rather than the target.
	KindConfig

	// KindEqual and KindHash are the identity-preserving handlers; they
	// apply regardless of advice.
	KindEqual
	KindHash

	// KindNoOverride is the never-intercept slot for excluded methods.
	KindNoOverride
)

// String returns the slot name used in logs and metric labels.
func (k DispatchKind) String() string {
	switch k {
	case KindAdvised:
		return "advised"
	case KindFixedChain:
		return "fixed_chain"
	case KindPlainTarget:
		return "plain_target"
	case KindDirect:
		return "direct"
	case KindConfig:
		return "config"
	case KindEqual:
		return "equal"
	case KindHash:
		return "hash"
	case KindNoOverride:
		return "no_override"
	default:
		return "unknown"
	}
}

// methodInfo is one entry of the dispatch table: the method descriptor,
// its assigned slot, and slot-specific precomputed state.
type methodInfo struct {
	m        advice.Method
	raw      bool
	variadic bool
	kind     DispatchKind

	// chain is the baked interceptor chain for KindFixedChain.
	chain []advice.Interceptor

	// boundMethod is the method value prebound to the cached static target,
	// set when the configuration allows eager optimization.
	boundMethod reflect.Value
}

// dispatchTable maps every intercepted method to exactly one slot.
type dispatchTable struct {
	methods map[string]*methodInfo
	order   []string
}

// advisedMethodNames are reserved for administrative dispatch unless the
// configuration is opaque.
var advisedMethodNames = buildAdvisedNames()

func buildAdvisedNames() map[string]bool {
	names := make(map[string]bool, advisedType.NumMethod())
	for i := 0; i < advisedType.NumMethod(); i++ {
		names[advisedType.Method(i).Name] = true
	}
	return names
}

// identityMethodNames route to the identity handlers regardless of advice.
const (
	equalMethodName = "Equal"
	hashMethodName  = "Hash"
)

// buildDispatchTable classifies every discovered method into its slot,
// following one fixed decision order: exclusions, administrative methods,
// identity methods, then the advice-dependent routes.
func buildDispatchTable(cfg *Config, methods []discoveredMethod) (*dispatchTable, error) {
	src := cfg.TargetSource()
	targetClass := src.TargetClass()
	isStatic := src.Static()
	frozen := cfg.Frozen()
	expose := cfg.ExposeProxy()

	table := &dispatchTable{methods: make(map[string]*methodInfo, len(methods))}
	for _, dm := range methods {
		if prev, ok := table.methods[dm.m.Name]; ok {
			if prev.m.Type != dm.m.Type {
				return nil, &SynthesisError{Reason: fmt.Sprintf(
					"method %s declared with conflicting signatures (%s vs %s)",
					dm.m.Name, prev.m.Type, dm.m.Type)}
			}
			continue
		}

		mi := &methodInfo{m: dm.m, raw: dm.raw, variadic: dm.m.Type.IsVariadic()}
		switch {
		case cfg.excludedMethod(dm.m.Name):
			mi.kind = KindNoOverride

		case !cfg.Opaque() && advisedMethodNames[dm.m.Name]:
			mi.kind = KindConfig

		case dm.m.Name == equalMethodName:
			mi.kind = KindEqual

		case dm.m.Name == hashMethodName:
			mi.kind = KindHash

		default:
			chain := cfg.InterceptorsFor(dm.m, targetClass)
			if len(chain) > 0 || !frozen {
				switch {
				case expose:
					mi.kind = KindAdvised
				case isStatic && frozen:
					mi.kind = KindFixedChain
					mi.chain = chain
				default:
					mi.kind = KindAdvised
				}
			} else {
				switch {
				case expose || !isStatic:
					mi.kind = KindPlainTarget
				case returnsThisCompatible(dm.m, targetClass):
					mi.kind = KindPlainTarget
				default:
					mi.kind = KindDirect
				}
			}
		}

		table.methods[dm.m.Name] = mi
		table.order = append(table.order, dm.m.Name)
	}

	if len(table.order) == 0 {
		return nil, &SynthesisError{Reason: "empty method set: nothing to proxy"}
	}
	return table, nil
}

// returnsThisCompatible reports whether any result slot of m could carry
// the target itself, which would require identity substitution and rules
// out the direct fast path.
func returnsThisCompatible(m advice.Method, targetClass reflect.Type) bool {
	if targetClass == nil {
		return false
	}
	for i := 0; i < m.Type.NumOut(); i++ {
		if targetClass.AssignableTo(m.Type.Out(i)) {
			return true
		}
	}
	return false
}

// discoveredMethod pairs a method descriptor with its raw-target-access
// marking, as produced by the strategy's method-set discovery.
type discoveredMethod struct {
	m   advice.Method
	raw bool
}

// contractMethods enumerates the intercepted methods declared by an
// interface contract. Contracts embedding RawTargetAccess have all their
// methods marked raw; the marker's own method is not intercepted.
func contractMethods(contract reflect.Type) []discoveredMethod {
	raw := contract.Implements(rawAccessType)
	out := make([]discoveredMethod, 0, contract.NumMethod())
	for i := 0; i < contract.NumMethod(); i++ {
		m := contract.Method(i)
		if m.Name == "RawTargetAccess" {
			continue
		}
		out = append(out, discoveredMethod{
			m:   advice.Method{Name: m.Name, Type: m.Type, Owner: contract},
			raw: raw,
		})
	}
	return out
}

// classMethods enumerates the exported method set of a concrete target
// class, with receivers stripped from the signatures so they line up with
// interface method types.
func classMethods(class reflect.Type) []discoveredMethod {
	out := make([]discoveredMethod, 0, class.NumMethod())
	for i := 0; i < class.NumMethod(); i++ {
		m := class.Method(i)
		out = append(out, discoveredMethod{
			m: advice.Method{Name: m.Name, Type: stripReceiver(m.Type), Owner: class},
		})
	}
	return out
}

// stripReceiver rebuilds a method's func type without the receiver
// parameter.
func stripReceiver(mt reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, mt.NumIn()-1)
	for i := 1; i < mt.NumIn(); i++ {
		in = append(in, mt.In(i))
	}
	out := make([]reflect.Type, 0, mt.NumOut())
	for i := 0; i < mt.NumOut(); i++ {
		out = append(out, mt.Out(i))
	}
	return reflect.FuncOf(in, out, mt.IsVariadic())
}
