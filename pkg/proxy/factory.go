package proxy

import (
	"fmt"
	"log/slog"
	"reflect"

	"mercator-hq/callisto/pkg/advice"
)

// Strategy names for the two synthesis variants. Interface proxies derive
// their method set from the declared contracts; class proxies derive it
// from the concrete target class.
const (
	StrategyInterface = "interface"
	StrategyClass     = "class"
)

// Observer receives engine-level measurements. The telemetry metrics
// collector implements it; a nil observer disables recording entirely.
type Observer interface {
	RecordProxyCreated(strategy string)
	RecordInvocation(kind string, seconds float64, chainDepth int)
}

// Factory synthesizes proxy instances from configurations. The same
// factory can produce many proxies; it carries only the logger and
// observer they share.
type Factory struct {
	logger   *slog.Logger
	observer Observer
	defaults *configDefaults

	// validate controls synthesis-time target-class inspection. On by
	// default; NewFactoryFromConfig reads it from validation.enabled.
	validate bool
}

// FactoryOption customizes a Factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger proxies report diagnostics through.
// Default: slog.Default() with component=proxy.factory.
func WithLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = l }
}

// WithObserver wires an engine metrics observer into every proxy the
// factory creates.
func WithObserver(o Observer) FactoryOption {
	return func(f *Factory) { f.observer = o }
}

// NewFactory creates a proxy factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{validate: true}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default().With("component", "proxy.factory")
	}
	return f
}

// GetProxy synthesizes a proxy for cfg. The strategy is chosen from the
// configuration: declared contracts select the interface strategy, a bare
// concrete target selects the class strategy. Synthesis failures are
// structural and come back as *SynthesisError; they are never retried.
func (f *Factory) GetProxy(cfg *Config) (*Instance, error) {
	if cfg == nil {
		return nil, &SynthesisError{Reason: "nil configuration"}
	}

	src := cfg.TargetSource()
	targetClass := src.TargetClass()
	if len(cfg.Advisors()) == 0 && targetClass == nil {
		return nil, &SynthesisError{
			Reason: "no advisors and trivial target source: nothing to proxy"}
	}

	var (
		strategy string
		methods  []discoveredMethod
	)
	if contracts := cfg.Contracts(); len(contracts) > 0 {
		strategy = StrategyInterface
		for _, c := range contracts {
			methods = append(methods, contractMethods(c)...)
		}
	} else {
		strategy = StrategyClass
		if targetClass == nil {
			return nil, &SynthesisError{
				Reason: "class proxying requires a target source with a target class"}
		}
		if f.validate && targetClass.Kind() != reflect.Pointer {
			validateTargetClass(targetClass, f.logger)
		}
		methods = classMethods(targetClass)
	}

	methods = append(methods, identityMethods(methods)...)
	if !cfg.Opaque() {
		methods = appendAdminMethods(methods)
	}

	table, err := buildDispatchTable(cfg, methods)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		cfg:       cfg,
		strategy:  strategy,
		table:     table,
		contracts: CompleteProxiedContracts(cfg),
		salt:      strategySalt(strategy),
		logger:    f.logger,
		observer:  f.observer,
	}

	if src.Static() {
		tgt, err := src.GetTarget()
		if err != nil {
			return nil, &SynthesisError{Reason: "static target acquisition failed", Err: err}
		}
		inst.staticTarget = tgt
		inst.staticSrc = src
		inst.hasStatic = true
		if cfg.Optimize() && tgt != nil {
			tv := reflect.ValueOf(tgt)
			for _, mi := range table.methods {
				if m := tv.MethodByName(mi.m.Name); m.IsValid() {
					mi.boundMethod = m
				}
			}
		}
	}

	f.logger.Debug("proxy synthesized",
		"strategy", strategy,
		"target", fmt.Sprintf("%v", src),
		"methods", len(table.order),
		"frozen", cfg.Frozen(),
	)
	if f.observer != nil {
		f.observer.RecordProxyCreated(strategy)
	}
	if f.defaults != nil && f.defaults.freeze {
		cfg.Freeze()
	}
	return inst, nil
}

// identityMethods supplies Equal and Hash descriptors when the discovered
// set does not already declare them, so every proxy answers identity calls
// on the dynamic surface.
func identityMethods(existing []discoveredMethod) []discoveredMethod {
	hasEqual, hasHash := false, false
	for _, dm := range existing {
		switch dm.m.Name {
		case equalMethodName:
			hasEqual = true
		case hashMethodName:
			hasHash = true
		}
	}
	var out []discoveredMethod
	if !hasEqual {
		out = append(out, discoveredMethod{m: advice.Method{
			Name: equalMethodName,
			Type: reflect.TypeOf(func(any) bool { return false }),
		}})
	}
	if !hasHash {
		out = append(out, discoveredMethod{m: advice.Method{
			Name: hashMethodName,
			Type: reflect.TypeOf(func() uint64 { return 0 }),
		}})
	}
	return out
}

// appendAdminMethods adds the Advised contract methods so administrative
// calls work on the dynamic surface. Names already present (a user
// contract colliding with the administrative surface) keep their first
// discovery; the dispatch table routes them to the configuration anyway.
func appendAdminMethods(methods []discoveredMethod) []discoveredMethod {
	seen := make(map[string]bool, len(methods))
	for _, dm := range methods {
		seen[dm.m.Name] = true
	}
	for _, dm := range contractMethods(advisedType) {
		if !seen[dm.m.Name] {
			methods = append(methods, dm)
		}
	}
	return methods
}
