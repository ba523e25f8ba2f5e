package callctx

import (
	"sync"
	"testing"
)

func TestCurrentDefaultsToNil(t *testing.T) {
	if got := Current(); got != nil {
		t.Errorf("Current() = %v, want nil", got)
	}
}

func TestSetAndRestore(t *testing.T) {
	restore := Set("outer")
	if got := Current(); got != "outer" {
		t.Errorf("Current() = %v, want outer", got)
	}

	// Nested set restores previous. Not a t.Run subtest: subtests run on
	// their own goroutine, and the holder is goroutine-scoped by design.
	inner := Set("inner")
	if got := Current(); got != "inner" {
		t.Errorf("Current() = %v, want inner", got)
	}
	inner()
	if got := Current(); got != "outer" {
		t.Errorf("Current() after inner restore = %v, want outer", got)
	}

	restore()
	if got := Current(); got != nil {
		t.Errorf("Current() after restore = %v, want nil", got)
	}
}

func TestRestoreRunsOnPanic(t *testing.T) {
	func() {
		defer func() { recover() }()
		defer Set("panicking")()
		panic("boom")
	}()
	if got := Current(); got != nil {
		t.Errorf("Current() after panic = %v, want nil", got)
	}
}

func TestGoroutineIsolation(t *testing.T) {
	restore := Set("main")
	defer restore()

	var wg sync.WaitGroup
	var other any
	wg.Add(1)
	go func() {
		defer wg.Done()
		other = Current()
	}()
	wg.Wait()

	if other != nil {
		t.Errorf("Current() on other goroutine = %v, want nil", other)
	}
	if got := Current(); got != "main" {
		t.Errorf("Current() on main goroutine = %v, want main", got)
	}
}
