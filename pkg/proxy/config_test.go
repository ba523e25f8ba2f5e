package proxy

import (
	"errors"
	"reflect"
	"testing"

	"mercator-hq/callisto/pkg/advice"
	"mercator-hq/callisto/pkg/target"
)

func TestFrozenConfig(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetTarget(&fooService{}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddInterceptor(doublingInterceptor{}); err != nil {
		t.Fatal(err)
	}
	cfg.Freeze()

	if !cfg.Frozen() {
		t.Fatal("Frozen() = false after Freeze()")
	}

	mutations := map[string]func() error{
		"SetTargetSource": func() error { return cfg.SetTargetSource(target.NewEmpty()) },
		"AddAdvisor":      func() error { return cfg.AddAdvisor(advice.NewAdvisor(doublingInterceptor{}, nil)) },
		"RemoveAdvisor":   func() error { return cfg.RemoveAdvisor(0) },
		"AddContract":     func() error { return cfg.AddContract(fooContract) },
		"ExcludeMethod":   func() error { return cfg.ExcludeMethod("Bar") },
		"SetExposeProxy":  func() error { return cfg.SetExposeProxy(true) },
		"SetOptimize":     func() error { return cfg.SetOptimize(true) },
		"SetOpaque":       func() error { return cfg.SetOpaque(true) },
		"SetDecorate":     func() error { return cfg.SetDecorate(true) },
		"SetChainResolver": func() error {
			return cfg.SetChainResolver(advice.DefaultChainResolver{})
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			err := mutate()
			var frozen *FrozenConfigError
			if !errors.As(err, &frozen) {
				t.Fatalf("%s on frozen config: error = %v, want *FrozenConfigError", name, err)
			}
			if frozen.Op == "" {
				t.Error("FrozenConfigError.Op is empty")
			}
		})
	}

	t.Run("advisors survive untouched", func(t *testing.T) {
		if got := len(cfg.Advisors()); got != 1 {
			t.Errorf("len(Advisors()) = %d, want 1", got)
		}
	})
}

func TestRemoveAdvisor(t *testing.T) {
	var log []string
	cfg := NewConfig()
	if err := cfg.SetTarget(&fooService{}); err != nil {
		t.Fatal(err)
	}
	tagged := func(tag string) advice.Interceptor {
		return advice.InterceptorFunc(func(inv advice.Invocation) ([]any, error) {
			log = append(log, tag)
			return inv.Proceed()
		})
	}
	for _, tag := range []string{"a", "b"} {
		if err := cfg.AddInterceptor(tagged(tag)); err != nil {
			t.Fatal(err)
		}
	}

	if err := cfg.RemoveAdvisor(0); err != nil {
		t.Fatalf("RemoveAdvisor(0) error = %v", err)
	}
	if got := len(cfg.Advisors()); got != 1 {
		t.Fatalf("len(Advisors()) after removal = %d, want 1", got)
	}
	if err := cfg.RemoveAdvisor(5); err == nil {
		t.Error("RemoveAdvisor(out of range) error = nil, want error")
	}

	p, err := mustProxy(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Call("Bar"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(log, []string{"b"}) {
		t.Errorf("execution log = %v, want [b]", log)
	}
}

func TestAddContractValidation(t *testing.T) {
	cfg := NewConfig()

	t.Run("non-interface rejected", func(t *testing.T) {
		if err := cfg.AddContract(reflect.TypeOf(fooService{})); err == nil {
			t.Error("AddContract(struct type) error = nil, want error")
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		if err := cfg.AddContract(fooContract); err != nil {
			t.Fatal(err)
		}
		if err := cfg.AddContract(fooContract); err != nil {
			t.Fatal(err)
		}
		if got := len(cfg.Contracts()); got != 1 {
			t.Errorf("len(Contracts()) = %d, want 1", got)
		}
	})
}

func TestChainCache(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetTarget(&fooService{}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddInterceptor(doublingInterceptor{}); err != nil {
		t.Fatal(err)
	}

	m := advice.Method{Name: "Bar", Type: reflect.TypeOf(func() int { return 0 })}
	targetType := reflect.TypeOf(&fooService{})

	first := cfg.InterceptorsFor(m, targetType)
	if len(first) != 1 {
		t.Fatalf("len(chain) = %d, want 1", len(first))
	}

	t.Run("memoized while advice is unchanged", func(t *testing.T) {
		again := cfg.InterceptorsFor(m, targetType)
		if len(again) != 1 {
			t.Errorf("len(cached chain) = %d, want 1", len(again))
		}
	})

	t.Run("invalidated by advice mutation", func(t *testing.T) {
		if err := cfg.AddInterceptor(doublingInterceptor{}); err != nil {
			t.Fatal(err)
		}
		if got := cfg.InterceptorsFor(m, targetType); len(got) != 2 {
			t.Errorf("len(chain) after AddInterceptor = %d, want 2", len(got))
		}
		if err := cfg.RemoveAdvisor(1); err != nil {
			t.Fatal(err)
		}
		if got := cfg.InterceptorsFor(m, targetType); len(got) != 1 {
			t.Errorf("len(chain) after RemoveAdvisor = %d, want 1", len(got))
		}
	})
}
