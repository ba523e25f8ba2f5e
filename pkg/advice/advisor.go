package advice

import (
	"path"
	"reflect"
)

// Pointcut selects which methods an interceptor applies to. Matches is
// evaluated once per (method, target type) when the dispatch table is built,
// never per call.
type Pointcut interface {
	Matches(m Method, targetType reflect.Type) bool
}

// DynamicPointcut is a pointcut that also inspects arguments at call time.
// Static matching still gates it: MatchesArgs runs only for methods where
// Matches returned true.
type DynamicPointcut interface {
	Pointcut
	MatchesArgs(m Method, args []any) bool
}

// Advisor pairs an interceptor with the rule selecting the methods it wraps.
type Advisor interface {
	Interceptor() Interceptor
	// Pointcut returns the matching rule, or nil to match every method.
	Pointcut() Pointcut
}

// DefaultAdvisor is the plain Advisor implementation.
type DefaultAdvisor struct {
	interceptor Interceptor
	pointcut    Pointcut
}

// NewAdvisor builds an advisor. A nil pointcut matches all methods.
func NewAdvisor(i Interceptor, p Pointcut) *DefaultAdvisor {
	if i == nil {
		panic("advice: NewAdvisor called with nil interceptor")
	}
	return &DefaultAdvisor{interceptor: i, pointcut: p}
}

// Interceptor returns the wrapped interceptor.
func (a *DefaultAdvisor) Interceptor() Interceptor { return a.interceptor }

// Pointcut returns the matching rule, nil meaning match-all.
func (a *DefaultAdvisor) Pointcut() Pointcut { return a.pointcut }

// PointcutFunc adapts a predicate to the Pointcut interface.
type PointcutFunc func(m Method, targetType reflect.Type) bool

// Matches calls f.
func (f PointcutFunc) Matches(m Method, targetType reflect.Type) bool { return f(m, targetType) }

// NameMatcher returns a pointcut matching method names against glob
// patterns, e.g. NameMatcher("Get*", "List*"). A method matches if any
// pattern matches.
func NameMatcher(patterns ...string) Pointcut {
	return PointcutFunc(func(m Method, _ reflect.Type) bool {
		for _, p := range patterns {
			if ok, err := path.Match(p, m.Name); err == nil && ok {
				return true
			}
		}
		return false
	})
}

// TruePointcut matches every method. Functionally identical to a nil
// pointcut, useful where a non-nil Pointcut value is required.
var TruePointcut Pointcut = PointcutFunc(func(Method, reflect.Type) bool { return true })
