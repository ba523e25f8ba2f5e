package tracing

import (
	"context"
	"testing"

	"mercator-hq/callisto/pkg/config"
)

func TestNewDisabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New(disabled) error = %v", err)
	}
	if tracer.Enabled() {
		t.Error("Enabled() = true, want false")
	}

	// Noop spans must be safe to use end to end.
	ctx, span := tracer.Start(context.Background(), "test")
	span.End()
	if got := TraceID(ctx); got != "" {
		t.Errorf("TraceID(noop ctx) = %q, want empty", got)
	}

	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewNilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) error = nil, want error")
	}
}

func TestInvocationAttributes(t *testing.T) {
	attrs := InvocationAttributes("Bar", "*service.Foo", 3)
	if len(attrs) != 3 {
		t.Fatalf("len(attrs) = %d, want 3", len(attrs))
	}

	byKey := make(map[string]string)
	for _, a := range attrs {
		byKey[string(a.Key)] = a.Value.Emit()
	}
	if byKey[AttrMethod] != "Bar" {
		t.Errorf("attrs[%s] = %q, want Bar", AttrMethod, byKey[AttrMethod])
	}
	if byKey[AttrOwner] != "*service.Foo" {
		t.Errorf("attrs[%s] = %q, want *service.Foo", AttrOwner, byKey[AttrOwner])
	}
	if byKey[AttrChainDepth] != "3" {
		t.Errorf("attrs[%s] = %q, want 3", AttrChainDepth, byKey[AttrChainDepth])
	}

	t.Run("owner omitted when empty", func(t *testing.T) {
		attrs := InvocationAttributes("Bar", "", 1)
		if len(attrs) != 2 {
			t.Errorf("len(attrs) = %d, want 2", len(attrs))
		}
	})
}
