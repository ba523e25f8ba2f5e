// Package advice defines the interception contracts: interceptors, the
// in-flight invocation they receive, advisors pairing an interceptor with a
// matching rule, and the resolver that turns an advisor list into the
// ordered interceptor chain for one method.
//
// # Overview
//
// An Interceptor wraps a method call. It receives an Invocation and decides
// whether to call Proceed (continuing down the chain toward the real method)
// or to short-circuit with its own result, which is how caching, retry, and
// guard advice are expressed.
//
// An Advisor attaches a Pointcut to an interceptor. Pointcuts here are
// opaque predicates over (method, target type); how a predicate is authored
// (by hand, from expressions, from annotations) is outside this package.
// A DynamicPointcut additionally inspects arguments at call time; the chain
// resolver wraps such interceptors so the argument check runs per call.
//
// # Usage
//
//	logAll := advice.NewAdvisor(myInterceptor, nil) // nil pointcut: match all
//	getters := advice.NewAdvisor(cacheInterceptor, advice.NameMatcher("Get*"))
//	chain := advice.DefaultChainResolver{}.Chain(advisors, m, targetType)
//
// # Thread Safety
//
// Resolvers and the provided pointcuts are stateless and safe for concurrent
// use. Interceptor implementations define their own safety.
package advice
