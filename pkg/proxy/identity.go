package proxy

import (
	"hash/fnv"
	"reflect"

	"mercator-hq/callisto/pkg/target"
)

// hashMultiplier combines the strategy salt with the target source hash.
// The proxy hash is deliberately advisor-independent: it must stay constant
// across advice mutation on a live (unfrozen) proxy, so only the strategy
// identity and the target source participate.
const hashMultiplier = 13

// strategySalt derives the class-identity salt for a synthesis strategy.
func strategySalt(strategy string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("callisto.proxy." + strategy))
	return h.Sum64()
}

// sourceHash returns the stable hash contribution of a target source.
// Sources defining their own hash are used as-is; others fall back to a
// hash of their target class name.
func sourceHash(ts target.TargetSource) uint64 {
	if h, ok := ts.(target.Hasher); ok {
		return h.TargetHash()
	}
	h := fnv.New64a()
	if tc := ts.TargetClass(); tc != nil {
		_, _ = h.Write([]byte(tc.String()))
	}
	return h.Sum64()
}

// configsEquivalent implements structural proxy equality: equal contract
// sets, advisors equal by type (interceptor and pointcut dynamic types, in
// order), and the same target source instance.
func configsEquivalent(a, b *Config) bool {
	if a == b {
		return true
	}
	if a.TargetSource() != b.TargetSource() {
		return false
	}
	ac, bc := a.Contracts(), b.Contracts()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if ac[i] != bc[i] {
			return false
		}
	}
	aa, ba := a.Advisors(), b.Advisors()
	if len(aa) != len(ba) {
		return false
	}
	for i := range aa {
		if reflect.TypeOf(aa[i].Interceptor()) != reflect.TypeOf(ba[i].Interceptor()) {
			return false
		}
		if reflect.TypeOf(aa[i].Pointcut()) != reflect.TypeOf(ba[i].Pointcut()) {
			return false
		}
	}
	return true
}
