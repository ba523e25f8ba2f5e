package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/proxy"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:                   true,
		Namespace:                 "test",
		Subsystem:                 "proxy",
		InvocationDurationBuckets: []float64{0.0001, 0.001, 0.01},
		ChainDepthBuckets:         []float64{1, 2, 4},
	}
}

func TestNewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)
	if collector == nil {
		t.Fatal("NewCollector() = nil")
	}
	if collector.Registry() != registry {
		t.Error("Registry() did not return the provided registry")
	}

	t.Run("nil registry gets a fresh one", func(t *testing.T) {
		c := NewCollector(testConfig(), nil)
		if c.Registry() == nil {
			t.Error("Registry() = nil with nil input registry")
		}
	})

	t.Run("empty buckets fall back to defaults", func(t *testing.T) {
		cfg := &config.MetricsConfig{Enabled: true}
		NewCollector(cfg, nil)
		if len(cfg.InvocationDurationBuckets) == 0 {
			t.Error("InvocationDurationBuckets not defaulted")
		}
		if cfg.Namespace != config.DefaultMetricsNamespace {
			t.Errorf("Namespace = %q, want default %q", cfg.Namespace, config.DefaultMetricsNamespace)
		}
	})
}

func TestRecordProxyCreated(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordProxyCreated("class")
	collector.RecordProxyCreated("class")
	collector.RecordProxyCreated("interface")

	if got := testutil.ToFloat64(collector.synthesis.proxiesCreated.WithLabelValues("class")); got != 2 {
		t.Errorf("proxies_created_total{strategy=class} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.synthesis.proxiesCreated.WithLabelValues("interface")); got != 1 {
		t.Errorf("proxies_created_total{strategy=interface} = %v, want 1", got)
	}
}

func TestRecordInvocation(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordInvocation("direct", 0.00002, 0)
	collector.RecordInvocation("advised", 0.0005, 3)
	collector.RecordInvocation("advised", 0.0004, 3)

	if got := testutil.ToFloat64(collector.invocation.invocationsTotal.WithLabelValues("direct")); got != 1 {
		t.Errorf("invocations_total{kind=direct} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.invocation.invocationsTotal.WithLabelValues("advised")); got != 2 {
		t.Errorf("invocations_total{kind=advised} = %v, want 2", got)
	}

	if got := testutil.CollectAndCount(collector.invocation.chainDepth); got != 1 {
		t.Errorf("chain_depth metric count = %d, want 1", got)
	}
}

func TestDisabledCollector(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordProxyCreated("class")
	collector.RecordInvocation("direct", 0.001, 0)

	if got := testutil.ToFloat64(collector.synthesis.proxiesCreated.WithLabelValues("class")); got != 0 {
		t.Errorf("proxies_created_total recorded while disabled: %v", got)
	}
	if got := testutil.ToFloat64(collector.invocation.invocationsTotal.WithLabelValues("direct")); got != 0 {
		t.Errorf("invocations_total recorded while disabled: %v", got)
	}
}

func TestCollectorObservesFactory(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	factory := proxy.NewFactory(proxy.WithObserver(collector))

	cfg := proxy.NewConfig()
	if err := cfg.SetTarget(&testService{}); err != nil {
		t.Fatal(err)
	}
	cfg.Freeze()
	p, err := factory.GetProxy(cfg)
	if err != nil {
		t.Fatalf("GetProxy() error = %v", err)
	}
	if _, err := p.Call("Ping"); err != nil {
		t.Fatalf("Call(Ping) error = %v", err)
	}

	if got := testutil.ToFloat64(collector.synthesis.proxiesCreated.WithLabelValues("class")); got != 1 {
		t.Errorf("proxies_created_total{strategy=class} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.invocation.invocationsTotal.WithLabelValues("direct")); got != 1 {
		t.Errorf("invocations_total{kind=direct} = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordProxyCreated("class")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_proxy_proxies_created_total") {
		t.Error("exposition output missing test_proxy_proxies_created_total")
	}
}

type testService struct{}

func (testService) Ping() string { return "pong" }
