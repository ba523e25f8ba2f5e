package interceptors

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/advice"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/proxy"
	"mercator-hq/callisto/pkg/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type calcService struct{}

func (calcService) Add(a, b int) int { return a + b }

func (calcService) Div(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func (calcService) Describe(ctx context.Context) string { return "calc" }

func newCalcProxy(t *testing.T, advisors ...advice.Interceptor) *proxy.Instance {
	t.Helper()
	cfg := proxy.NewConfig()
	if err := cfg.SetTarget(&calcService{}); err != nil {
		t.Fatal(err)
	}
	for _, i := range advisors {
		if err := cfg.AddInterceptor(i); err != nil {
			t.Fatal(err)
		}
	}
	cfg.Freeze()
	p, err := proxy.NewFactory().GetProxy(cfg)
	if err != nil {
		t.Fatalf("GetProxy() error = %v", err)
	}
	return p
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := newCalcProxy(t, NewLogging(logger))

	t.Run("success logs at debug", func(t *testing.T) {
		buf.Reset()
		out, err := p.Call("Add", 2, 3)
		if err != nil {
			t.Fatalf("Call(Add) error = %v", err)
		}
		if out[0] != 5 {
			t.Errorf("Call(Add, 2, 3) = %v, want 5", out[0])
		}
		logged := buf.String()
		if !strings.Contains(logged, "invocation completed") || !strings.Contains(logged, "Add") {
			t.Errorf("log output %q missing completion entry for Add", logged)
		}
	})

	t.Run("failure logs at error and passes the error through", func(t *testing.T) {
		buf.Reset()
		_, err := p.Call("Div", 1, 0)
		if err == nil || !strings.Contains(err.Error(), "division by zero") {
			t.Fatalf("Call(Div, 1, 0) error = %v, want division by zero", err)
		}
		if !strings.Contains(buf.String(), "invocation failed") {
			t.Errorf("log output %q missing failure entry", buf.String())
		}
	})
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	p := newCalcProxy(t, m)

	if _, err := p.Call("Add", 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Call("Add", 2, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Call("Div", 1, 0); err == nil {
		t.Fatal("Call(Div, 1, 0) error = nil, want error")
	}

	owner := reflect.TypeOf(&calcService{}).String()
	success := testutil.ToFloat64(m.callsTotal.WithLabelValues(owner+".Add", "success"))
	if success != 2 {
		t.Errorf("calls_total{method=Add, outcome=success} = %v, want 2", success)
	}
	failed := testutil.ToFloat64(m.callsTotal.WithLabelValues(owner+".Div", "error"))
	if failed != 1 {
		t.Errorf("calls_total{method=Div, outcome=error} = %v, want 1", failed)
	}
}

func TestTracing(t *testing.T) {
	tracer, err := tracing.New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("tracing.New() error = %v", err)
	}
	p := newCalcProxy(t, NewTracing(tracer))

	t.Run("transparent on plain calls", func(t *testing.T) {
		out, err := p.Call("Add", 4, 5)
		if err != nil {
			t.Fatalf("Call(Add) error = %v", err)
		}
		if out[0] != 9 {
			t.Errorf("Call(Add, 4, 5) = %v, want 9", out[0])
		}
	})

	t.Run("context argument is forwarded", func(t *testing.T) {
		out, err := p.Call("Describe", context.Background())
		if err != nil {
			t.Fatalf("Call(Describe) error = %v", err)
		}
		if out[0] != "calc" {
			t.Errorf("Call(Describe) = %v, want calc", out[0])
		}
	})

	t.Run("errors pass through with span recorded", func(t *testing.T) {
		if _, err := p.Call("Div", 1, 0); err == nil {
			t.Error("Call(Div, 1, 0) error = nil, want error")
		}
	})
}

// attrRecorder captures the span attributes resolved for each invocation it
// sees, then proceeds.
type attrRecorder struct {
	byKey map[string]string
}

func (r *attrRecorder) Invoke(inv advice.Invocation) ([]any, error) {
	r.byKey = map[string]string{}
	for _, a := range invocationSpanAttributes(inv) {
		r.byKey[string(a.Key)] = a.Value.Emit()
	}
	return inv.Proceed()
}

func TestSpanAttributes(t *testing.T) {
	rec := &attrRecorder{}
	p := newCalcProxy(t, rec)

	if _, err := p.Call("Add", 1, 2); err != nil {
		t.Fatalf("Call(Add) error = %v", err)
	}

	want := map[string]string{
		tracing.AttrMethod:       "Add",
		tracing.AttrDispatchKind: "fixed_chain",
		tracing.AttrChainDepth:   "1",
		tracing.AttrStrategy:     proxy.StrategyClass,
	}
	for key, val := range want {
		if rec.byKey[key] != val {
			t.Errorf("attrs[%s] = %q, want %q", key, rec.byKey[key], val)
		}
	}
	if owner := rec.byKey[tracing.AttrOwner]; owner == "" {
		t.Error("attrs missing owner")
	}
}

func TestStackedAdvice(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	p := newCalcProxy(t, NewLogging(logger), m)
	out, err := p.Call("Add", 10, 20)
	if err != nil {
		t.Fatalf("Call(Add) error = %v", err)
	}
	if out[0] != 30 {
		t.Errorf("Call(Add, 10, 20) = %v, want 30", out[0])
	}
	if buf.Len() == 0 {
		t.Error("logging advice produced no output")
	}
}
