package advice

import (
	"reflect"
	"testing"
)

type fakeInvocation struct {
	args []any
	log  *[]string
	tag  string
}

func (f *fakeInvocation) Proceed() ([]any, error) {
	*f.log = append(*f.log, "proceed")
	return nil, nil
}
func (f *fakeInvocation) Method() Method      { return Method{Name: "Fake"} }
func (f *fakeInvocation) Args() []any         { return f.args }
func (f *fakeInvocation) SetArgs(args []any)  { f.args = args }
func (f *fakeInvocation) Target() any         { return nil }
func (f *fakeInvocation) Proxy() any          { return nil }

func tagInterceptor(tag string, log *[]string) Interceptor {
	return InterceptorFunc(func(inv Invocation) ([]any, error) {
		*log = append(*log, tag)
		return inv.Proceed()
	})
}

func methodNamed(name string) Method {
	return Method{Name: name, Type: reflect.TypeOf(func() {})}
}

func TestDefaultChainResolver(t *testing.T) {
	resolver := DefaultChainResolver{}
	var log []string

	t.Run("nil pointcut matches all", func(t *testing.T) {
		advisors := []Advisor{NewAdvisor(tagInterceptor("a", &log), nil)}
		chain := resolver.Chain(advisors, methodNamed("Anything"), nil)
		if len(chain) != 1 {
			t.Fatalf("len(chain) = %d, want 1", len(chain))
		}
	})

	t.Run("preserves advisor order", func(t *testing.T) {
		advisors := []Advisor{
			NewAdvisor(tagInterceptor("a", &log), nil),
			NewAdvisor(tagInterceptor("b", &log), nil),
			NewAdvisor(tagInterceptor("c", &log), nil),
		}
		chain := resolver.Chain(advisors, methodNamed("M"), nil)
		log = log[:0]
		for _, i := range chain {
			if _, err := i.Invoke(&fakeInvocation{log: &log}); err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
		}
		want := []string{"a", "proceed", "b", "proceed", "c", "proceed"}
		if !reflect.DeepEqual(log, want) {
			t.Errorf("execution log = %v, want %v", log, want)
		}
	})

	t.Run("name matcher filters", func(t *testing.T) {
		advisors := []Advisor{
			NewAdvisor(tagInterceptor("get", &log), NameMatcher("Get*")),
			NewAdvisor(tagInterceptor("all", &log), nil),
		}
		chain := resolver.Chain(advisors, methodNamed("SetName"), nil)
		if len(chain) != 1 {
			t.Fatalf("len(chain) = %d, want 1", len(chain))
		}
		chain = resolver.Chain(advisors, methodNamed("GetName"), nil)
		if len(chain) != 2 {
			t.Fatalf("len(chain) = %d, want 2", len(chain))
		}
	})

	t.Run("no match yields nil chain", func(t *testing.T) {
		advisors := []Advisor{
			NewAdvisor(tagInterceptor("get", &log), NameMatcher("Get*")),
		}
		if chain := resolver.Chain(advisors, methodNamed("Close"), nil); chain != nil {
			t.Errorf("Chain() = %v, want nil", chain)
		}
	})
}

type evenArgPointcut struct{}

func (evenArgPointcut) Matches(Method, reflect.Type) bool { return true }
func (evenArgPointcut) MatchesArgs(_ Method, args []any) bool {
	n, _ := args[0].(int)
	return n%2 == 0
}

func TestDynamicPointcut(t *testing.T) {
	var log []string
	advisors := []Advisor{
		NewAdvisor(tagInterceptor("dyn", &log), evenArgPointcut{}),
	}
	chain := DefaultChainResolver{}.Chain(advisors, methodNamed("M"), nil)
	if len(chain) != 1 {
		t.Fatalf("len(chain) = %d, want 1", len(chain))
	}

	t.Run("argument match runs interceptor", func(t *testing.T) {
		log = log[:0]
		if _, err := chain[0].Invoke(&fakeInvocation{args: []any{2}, log: &log}); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		want := []string{"dyn", "proceed"}
		if !reflect.DeepEqual(log, want) {
			t.Errorf("log = %v, want %v", log, want)
		}
	})

	t.Run("argument miss is transparent", func(t *testing.T) {
		log = log[:0]
		if _, err := chain[0].Invoke(&fakeInvocation{args: []any{3}, log: &log}); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		want := []string{"proceed"}
		if !reflect.DeepEqual(log, want) {
			t.Errorf("log = %v, want %v", log, want)
		}
	})
}

func TestMethodHasErrorResult(t *testing.T) {
	withErr := Method{Name: "A", Type: reflect.TypeOf(func() (int, error) { return 0, nil })}
	if !withErr.HasErrorResult() {
		t.Error("HasErrorResult() = false, want true")
	}
	noErr := Method{Name: "B", Type: reflect.TypeOf(func() int { return 0 })}
	if noErr.HasErrorResult() {
		t.Error("HasErrorResult() = true, want false")
	}
}
