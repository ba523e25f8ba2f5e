package proxy

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// ValidationFinding is one advisory diagnostic about a target class. None
// of these are fatal; they name methods that will silently bypass advice so
// the misbehavior is explainable from the logs.
type ValidationFinding struct {
	Method string
	Reason string
}

func (f ValidationFinding) String() string {
	return fmt.Sprintf("%s: %s", f.Method, f.Reason)
}

// validationCache memoizes per-class validation results. Validation walks
// method sets and is worth doing once per class, not once per proxy. The
// cache carries a generation counter: InvalidateValidationCache bumps the
// generation and drops all entries, which is the explicit-invalidation
// stand-in for class unloading.
type classValidationCache struct {
	mu         sync.Mutex
	generation uint64
	entries    map[reflect.Type][]ValidationFinding
}

var validationCache = &classValidationCache{
	entries: make(map[reflect.Type][]ValidationFinding),
}

// InvalidateValidationCache drops every cached validation result and
// advances the cache generation.
func InvalidateValidationCache() {
	validationCache.mu.Lock()
	defer validationCache.mu.Unlock()
	validationCache.generation++
	validationCache.entries = make(map[reflect.Type][]ValidationFinding)
}

// validationCacheGeneration is exposed for tests.
func validationCacheGeneration() uint64 {
	validationCache.mu.Lock()
	defer validationCache.mu.Unlock()
	return validationCache.generation
}

// validateTargetClass inspects a concrete target class for methods the
// proxy cannot intercept and logs each finding at warn level. Results are
// cached per class under the mutex; check-then-insert is serialized so
// concurrent proxy creation never validates the same class twice.
func validateTargetClass(class reflect.Type, logger *slog.Logger) []ValidationFinding {
	validationCache.mu.Lock()
	if findings, ok := validationCache.entries[class]; ok {
		validationCache.mu.Unlock()
		return findings
	}
	findings := inspectClass(class)
	validationCache.entries[class] = findings
	validationCache.mu.Unlock()

	for _, f := range findings {
		logger.Warn("target method will bypass advice",
			"class", class.String(),
			"method", f.Method,
			"reason", f.Reason,
		)
	}
	return findings
}

// inspectClass computes the findings for one class. For value (non-pointer)
// targets, pointer-receiver methods are not in the value's method set and
// therefore unreachable through the proxy; those are the methods a caller
// most often expects to be advised and is not.
func inspectClass(class reflect.Type) []ValidationFinding {
	var findings []ValidationFinding
	if class.Kind() != reflect.Pointer {
		ptr := reflect.PointerTo(class)
		for i := 0; i < ptr.NumMethod(); i++ {
			name := ptr.Method(i).Name
			if _, ok := class.MethodByName(name); !ok {
				findings = append(findings, ValidationFinding{
					Method: name,
					Reason: "pointer-receiver method on value target; not interceptable",
				})
			}
		}
	}
	return findings
}
