// Package callctx holds the call-scoped "current proxy" used when a proxy
// is built with the expose-proxy flag. Code running inside advice or the
// target method can retrieve its own proxy wrapper, so self-calls can be
// routed back through the interception chain.
//
// The holder is goroutine-scoped. Set returns a restore func that must run
// in a defer: it reinstates the previous value even when the joinpoint
// panics, which keeps nested and re-entrant exposed proxies correct.
package callctx

import (
	"sync"

	"github.com/petermattis/goid"
)

var (
	mu      sync.RWMutex
	current = make(map[int64]any)
)

// Current returns the proxy associated with the calling goroutine, or nil
// when no exposed proxy is active on this call stack.
func Current() any {
	id := goid.Get()
	mu.RLock()
	p := current[id]
	mu.RUnlock()
	return p
}

// Set associates p with the calling goroutine and returns a restore func
// that reinstates the previous association. Callers must defer the restore
// so it runs on panic paths too:
//
//	defer callctx.Set(proxy)()
func Set(p any) (restore func()) {
	id := goid.Get()
	mu.Lock()
	prev, had := current[id]
	current[id] = p
	mu.Unlock()
	return func() {
		mu.Lock()
		if had {
			current[id] = prev
		} else {
			delete(current, id)
		}
		mu.Unlock()
	}
}
