package interceptors

import (
	"context"

	"mercator-hq/callisto/pkg/advice"
	"mercator-hq/callisto/pkg/proxy"
	"mercator-hq/callisto/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing is advice that opens a span per intercepted call. If the call's
// first argument is a context.Context, the span is parented to it and the
// argument is replaced with the span context so downstream advice and the
// target see the trace; otherwise the span starts from the background
// context.
type Tracing struct {
	tracer *tracing.Tracer
}

// NewTracing creates tracing advice using the given tracer.
func NewTracing(tracer *tracing.Tracer) *Tracing {
	return &Tracing{tracer: tracer}
}

// Invoke implements advice.Interceptor.
func (t *Tracing) Invoke(inv advice.Invocation) ([]any, error) {
	m := inv.Method()

	parent := context.Background()
	args := inv.Args()
	ctxIdx := -1
	if len(args) > 0 {
		if ctx, ok := args[0].(context.Context); ok && ctx != nil {
			parent = ctx
			ctxIdx = 0
		}
	}

	ctx, span := t.tracer.Start(parent, m.Name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(invocationSpanAttributes(inv)...),
	)
	defer span.End()

	if ctxIdx == 0 {
		replaced := make([]any, len(args))
		copy(replaced, args)
		replaced[0] = ctx
		inv.SetArgs(replaced)
	}

	results, err := inv.Proceed()
	if err != nil {
		tracing.SetError(span, err)
	}
	return results, err
}

// invocationSpanAttributes builds the span attribute set for one
// intercepted call: the standard method/owner/chain-depth attributes, plus
// the dispatch slot and synthesis strategy when the call entered through a
// proxy instance.
func invocationSpanAttributes(inv advice.Invocation) []attribute.KeyValue {
	m := inv.Method()

	owner := ""
	if m.Owner != nil {
		owner = m.Owner.String()
	}

	depth := 0
	var extra []attribute.KeyValue
	if p, ok := inv.Proxy().(*proxy.Instance); ok && p != nil {
		if d, known := p.ChainDepthOf(m.Name); known {
			depth = d
		}
		if kind, known := p.DispatchKindOf(m.Name); known {
			extra = append(extra, attribute.String(tracing.AttrDispatchKind, kind.String()))
		}
		extra = append(extra, attribute.String(tracing.AttrStrategy, p.Strategy()))
	}

	return append(tracing.InvocationAttributes(m.Name, owner, depth), extra...)
}
