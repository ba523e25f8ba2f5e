package advice

import "reflect"

// ChainResolver produces the ordered interceptor chain applicable to one
// method of one target type. The result order follows the advisor order;
// matching is already applied, so callers run the chain as-is.
type ChainResolver interface {
	Chain(advisors []Advisor, m Method, targetType reflect.Type) []Interceptor
}

// DefaultChainResolver is the stateless standard resolver. Memoization is
// the caller's concern: proxy configurations cache resolved chains per
// method and drop the cache when their advisor list changes.
type DefaultChainResolver struct{}

// Chain filters the advisor list through each advisor's pointcut. Advisors
// with a DynamicPointcut that matched statically are wrapped so the
// argument-level check runs on every invocation; if the argument check
// fails, the wrapper is transparent and the call proceeds past it.
func (DefaultChainResolver) Chain(advisors []Advisor, m Method, targetType reflect.Type) []Interceptor {
	if len(advisors) == 0 {
		return nil
	}
	chain := make([]Interceptor, 0, len(advisors))
	for _, a := range advisors {
		pc := a.Pointcut()
		if pc == nil {
			chain = append(chain, a.Interceptor())
			continue
		}
		if !pc.Matches(m, targetType) {
			continue
		}
		if dyn, ok := pc.(DynamicPointcut); ok {
			chain = append(chain, &dynamicMatchInterceptor{
				next:     a.Interceptor(),
				pointcut: dyn,
				method:   m,
			})
			continue
		}
		chain = append(chain, a.Interceptor())
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}

// dynamicMatchInterceptor re-checks a dynamic pointcut against the live
// arguments before delegating; on a miss it steps out of the way.
type dynamicMatchInterceptor struct {
	next     Interceptor
	pointcut DynamicPointcut
	method   Method
}

func (d *dynamicMatchInterceptor) Invoke(inv Invocation) ([]any, error) {
	if d.pointcut.MatchesArgs(d.method, inv.Args()) {
		return d.next.Invoke(inv)
	}
	return inv.Proceed()
}
