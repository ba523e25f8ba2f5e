package target

import (
	"errors"
	"fmt"
	"hash/fnv"
	"reflect"
	"sync"
)

// ErrPoolExhausted is returned by GetTarget when the pool is empty, at
// capacity, and configured not to block.
var ErrPoolExhausted = errors.New("target: pool exhausted")

// ErrPoolClosed is returned once the pool has been closed.
var ErrPoolClosed = errors.New("target: pool closed")

// PoolConfig contains configuration for a PoolTargetSource.
type PoolConfig struct {
	// MaxSize is the maximum number of instances the pool will create.
	// Default: 8
	MaxSize int

	// Block controls behavior when the pool is exhausted. When true,
	// GetTarget waits for an instance to be released; when false it fails
	// with ErrPoolExhausted.
	// Default: true
	Block bool
}

// PoolTargetSource hands out pooled target instances, creating them on
// demand through a constructor up to MaxSize. Every acquisition must be
// matched by a release; the engine guarantees this pairing around each
// invocation, including error returns.
type PoolTargetSource struct {
	newFn  func() (any, error)
	class  reflect.Type
	cfg    PoolConfig
	idle   chan any
	mu     sync.Mutex
	made   int
	closed bool
}

// NewPool creates a pooled source. The constructor is invoked lazily as
// instances are needed; its first result fixes the pool's target class, so
// class must be supplied up front.
func NewPool(class reflect.Type, newFn func() (any, error), cfg PoolConfig) (*PoolTargetSource, error) {
	if class == nil {
		return nil, fmt.Errorf("target: pool requires a target class")
	}
	if newFn == nil {
		return nil, fmt.Errorf("target: pool requires a constructor")
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 8
	}
	return &PoolTargetSource{
		newFn: newFn,
		class: class,
		cfg:   cfg,
		idle:  make(chan any, cfg.MaxSize),
	}, nil
}

// TargetClass returns the pooled instance type.
func (p *PoolTargetSource) TargetClass() reflect.Type { return p.class }

// Static returns false: each call may receive a different pooled instance.
func (p *PoolTargetSource) Static() bool { return false }

// GetTarget acquires an instance: an idle one when available, a freshly
// constructed one while under MaxSize, otherwise it blocks or fails
// depending on configuration.
func (p *PoolTargetSource) GetTarget() (any, error) {
	select {
	case t, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return t, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.made < p.cfg.MaxSize {
		p.made++
		p.mu.Unlock()
		t, err := p.newFn()
		if err != nil {
			p.mu.Lock()
			p.made--
			p.mu.Unlock()
			return nil, fmt.Errorf("target: pool constructor failed: %w", err)
		}
		if tt := reflect.TypeOf(t); !tt.AssignableTo(p.class) {
			p.mu.Lock()
			p.made--
			p.mu.Unlock()
			return nil, fmt.Errorf("target: pool constructor returned %s, want %s", tt, p.class)
		}
		return t, nil
	}
	p.mu.Unlock()

	if !p.cfg.Block {
		return nil, ErrPoolExhausted
	}
	t, ok := <-p.idle
	if !ok {
		return nil, ErrPoolClosed
	}
	return t, nil
}

// ReleaseTarget returns an instance to the pool. A nil target is ignored.
func (p *PoolTargetSource) ReleaseTarget(t any) error {
	if t == nil {
		return nil
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil
	}
	select {
	case p.idle <- t:
		return nil
	default:
		// Pool already holds MaxSize idle instances; drop the extra.
		return nil
	}
}

// Size reports how many instances the pool has constructed so far.
func (p *PoolTargetSource) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.made
}

// Close shuts the pool down. Subsequent acquisitions fail with ErrPoolClosed.
func (p *PoolTargetSource) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.idle)
	return nil
}

// TargetHash is derived from the pooled class, independent of which instance
// a given call receives.
func (p *PoolTargetSource) TargetHash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.class.String()))
	return h.Sum64()
}

func (p *PoolTargetSource) String() string {
	return fmt.Sprintf("PoolTargetSource(%s, max=%d)", p.class, p.cfg.MaxSize)
}
