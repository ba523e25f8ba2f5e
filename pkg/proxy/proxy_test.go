package proxy

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"mercator-hq/callisto/pkg/advice"
)

// fooService is the class-strategy fixture.
type fooService struct {
	name string
}

func (s *fooService) Bar() int                { return 42 }
func (s *fooService) Hello(who string) string { return "hello " + who }
func (s *fooService) Self() *fooService       { return s }
func (s *fooService) Other() *fooService      { return &fooService{name: "other"} }
func (s *fooService) Fail() error             { return errServiceFail }
func (s *fooService) Name() (string, error)   { return s.name, nil }

func (s *fooService) Sum(ns ...int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

var errServiceFail = errors.New("service failure")

// Foo is the interface-strategy fixture contract.
type Foo interface {
	Bar() int
}

var fooContract = reflect.TypeOf((*Foo)(nil)).Elem()

// recordingInterceptor appends "tag>" before proceeding and "<tag" on the
// way back out, so chain order and unwind order are both observable.
func recordingInterceptor(tag string, log *[]string, mu *sync.Mutex) advice.Interceptor {
	return advice.InterceptorFunc(func(inv advice.Invocation) ([]any, error) {
		mu.Lock()
		*log = append(*log, tag+">")
		mu.Unlock()
		res, err := inv.Proceed()
		mu.Lock()
		*log = append(*log, "<"+tag)
		mu.Unlock()
		return res, err
	})
}

// doublingInterceptor multiplies an int first result by two.
type doublingInterceptor struct{}

func (doublingInterceptor) Invoke(inv advice.Invocation) ([]any, error) {
	res, err := inv.Proceed()
	if err != nil {
		return res, err
	}
	if n, ok := res[0].(int); ok {
		res[0] = n * 2
	}
	return res, nil
}

// countingSource is a dynamic target source instrumented with counters.
type countingSource struct {
	mu       sync.Mutex
	tgt      any
	gets     int
	releases int
	failGet  bool
}

func (c *countingSource) TargetClass() reflect.Type { return reflect.TypeOf(c.tgt) }
func (c *countingSource) Static() bool              { return false }

func (c *countingSource) GetTarget() (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("acquisition refused")
	}
	c.gets++
	return c.tgt, nil
}

func (c *countingSource) ReleaseTarget(any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releases++
	return nil
}

func (c *countingSource) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.releases
}

// frozenClassProxy builds the canonical fast-path fixture: static target,
// frozen, no advice, class strategy.
func frozenClassProxy(svc *fooService) (*Instance, error) {
	cfg := NewConfig()
	if err := cfg.SetTarget(svc); err != nil {
		return nil, err
	}
	cfg.Freeze()
	return NewFactory().GetProxy(cfg)
}

func mustProxy(cfg *Config) (*Instance, error) {
	return NewFactory().GetProxy(cfg)
}

func fmtKinds(p *Instance) string {
	out := ""
	for _, name := range p.Methods() {
		k, _ := p.DispatchKindOf(name)
		out += fmt.Sprintf("%s=%s ", name, k)
	}
	return out
}
