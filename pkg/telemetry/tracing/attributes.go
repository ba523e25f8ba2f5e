package tracing

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys for intercepted-invocation spans.
const (
	// AttrMethod is the name of the intercepted method.
	AttrMethod = "callisto.method"

	// AttrOwner is the type that declared the intercepted method.
	AttrOwner = "callisto.owner"

	// AttrDispatchKind is the dispatch slot the call was routed through.
	AttrDispatchKind = "callisto.dispatch_kind"

	// AttrChainDepth is the number of interceptors in the resolved chain.
	AttrChainDepth = "callisto.chain_depth"

	// AttrStrategy is the synthesis strategy of the proxy.
	AttrStrategy = "callisto.strategy"
)

// InvocationAttributes builds the standard attribute set for one
// intercepted-invocation span.
func InvocationAttributes(method, owner string, chainDepth int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.Int(AttrChainDepth, chainDepth),
	}
	if owner != "" {
		attrs = append(attrs, attribute.String(AttrOwner, owner))
	}
	return attrs
}
