// File: pool/bounded.go
// Author: momentics <momentics@gmail.com>
//
// Bounded blocking resource pool. Hands out exclusive leases on reset,
// reusable resources; creates lazily up to a fixed capacity; parks
// acquirers FIFO when exhausted and hands released resources directly to
// the longest waiter.

package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-pool/api"
)

// errInvalidResource marks a resource rejected by its Valid() check.
var errInvalidResource = errors.New("resource failed validity check")

// grant is what a releaser hands to a parked acquirer: either an idle
// resource, or a permit to create a replacement after a discard freed
// capacity.
type grant[T any] struct {
	res    T
	direct bool // res is valid; false means creation permit
}

// waiter is one parked Acquire call. ready is buffered so the granter
// never blocks; cancelled and granted are guarded by the pool lock, which
// makes grant delivery and cancellation mutually exclusive.
type waiter[T any] struct {
	ready     chan grant[T]
	cancelled bool
	granted   bool
}

// Bounded is the default api.Pool implementation.
//
// All mutable state lives under one mutex: idle-set membership, lease
// tracking and the outstanding count change as a single atomic unit, so
// the pool can never overshoot its capacity even while resources are
// leased out. Cumulative counters are atomics updated outside the lock.
type Bounded[T api.Poolable] struct {
	factory  api.Factory[T]
	capacity int

	mu          sync.Mutex
	available   *queue.Queue // idle resources, FIFO
	waiters     *queue.Queue // *waiter[T], FIFO
	leased      map[T]struct{}
	outstanding int
	waiting     int
	closed      bool
	closedCh    chan struct{}

	created   atomic.Int64
	reused    atomic.Int64
	discarded atomic.Int64
	timeouts  atomic.Int64

	onDiscard func(T, error)
}

var _ api.Pool[*Buffer] = (*Bounded[*Buffer])(nil)

// New creates a bounded pool over factory with the given capacity.
// No resources are created up front unless WithPrefill is given.
func New[T api.Poolable](factory api.Factory[T], capacity int, opts ...Option[T]) (*Bounded[T], error) {
	if capacity <= 0 {
		return nil, api.ErrInvalidCapacity
	}
	if factory == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "factory must not be nil")
	}
	p := &Bounded[T]{
		factory:   factory,
		capacity:  capacity,
		available: queue.New(),
		waiters:   queue.New(),
		leased:    make(map[T]struct{}),
		closedCh:  make(chan struct{}),
	}
	cfg := options[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}
	p.onDiscard = cfg.onDiscard
	if cfg.prefill > capacity {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "prefill exceeds capacity").
			WithContext("prefill", cfg.prefill).
			WithContext("capacity", capacity)
	}
	for i := 0; i < cfg.prefill; i++ {
		res, err := factory.New()
		if err != nil {
			p.Close()
			return nil, api.WrapFactoryError(err)
		}
		p.available.Add(res)
		p.outstanding++
		p.created.Add(1)
	}
	return p, nil
}

// Acquire implements api.Pool. It blocks until a resource is granted or
// ctx is done; a nil ctx blocks indefinitely.
func (p *Bounded[T]) Acquire(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.acquire(ctx, nil)
}

// AcquireTimeout implements api.Pool. A budget of zero or less performs a
// single non-blocking attempt.
func (p *Bounded[T]) AcquireTimeout(d time.Duration) (T, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	return p.acquire(context.Background(), timer.C)
}

func (p *Bounded[T]) acquire(ctx context.Context, timerC <-chan time.Time) (T, error) {
	var zero T

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return zero, api.ErrPoolClosed
	}
	if p.available.Length() > 0 {
		res := p.available.Remove().(T)
		p.leased[res] = struct{}{}
		p.mu.Unlock()
		p.reused.Add(1)
		return res, nil
	}
	if p.outstanding < p.capacity {
		p.outstanding++
		p.mu.Unlock()
		return p.create()
	}

	// Exhausted: park until a releaser grants us a resource or a
	// creation permit.
	w := &waiter[T]{ready: make(chan grant[T], 1)}
	p.waiters.Add(w)
	p.waiting++
	p.mu.Unlock()

	select {
	case g := <-w.ready:
		if !g.direct {
			return p.create()
		}
		p.reused.Add(1)
		return g.res, nil
	case <-ctx.Done():
		return p.abandon(w, ctx.Err())
	case <-timerC:
		p.timeouts.Add(1)
		return p.abandon(w, api.ErrAcquireTimeout)
	case <-p.closedCh:
		return p.abandon(w, api.ErrPoolClosed)
	}
}

// create invokes the factory for a capacity slot already reserved under
// the lock. On failure the slot is released and passed on so a parked
// caller is not starved by someone else's factory error.
func (p *Bounded[T]) create() (T, error) {
	var zero T
	res, err := p.factory.New()
	if err != nil {
		p.mu.Lock()
		p.outstanding--
		p.grantPermitLocked()
		p.mu.Unlock()
		return zero, api.WrapFactoryError(err)
	}
	p.mu.Lock()
	if p.closed {
		p.outstanding--
		p.mu.Unlock()
		p.teardown(res)
		return zero, api.ErrPoolClosed
	}
	p.leased[res] = struct{}{}
	p.mu.Unlock()
	p.created.Add(1)
	return res, nil
}

// abandon removes a parked waiter after cancellation, timeout or pool
// close. If a grant already raced in, it is rerouted so no lease leaks.
func (p *Bounded[T]) abandon(w *waiter[T], cause error) (T, error) {
	var zero T
	p.mu.Lock()
	if w.granted {
		g := <-w.ready // buffered send happened under this lock, cannot block
		var destroy bool
		if g.direct {
			destroy = p.requeueLocked(g.res)
		} else {
			p.outstanding--
			p.grantPermitLocked()
		}
		p.mu.Unlock()
		if destroy {
			p.teardown(g.res)
		}
		return zero, cause
	}
	w.cancelled = true
	p.waiting--
	p.mu.Unlock()
	return zero, cause
}

// Release implements api.Pool. The resource is reset and optionally
// validated outside the lock; during that window it is counted in
// outstanding but is neither leased nor available.
func (p *Bounded[T]) Release(res T) error {
	p.mu.Lock()
	if _, ok := p.leased[res]; !ok {
		p.mu.Unlock()
		return api.ErrNotLeased
	}
	delete(p.leased, res)
	if p.closed {
		p.outstanding--
		p.mu.Unlock()
		p.teardown(res)
		return api.ErrPoolClosed
	}
	p.mu.Unlock()

	var cause error
	if err := res.Reset(); err != nil {
		cause = &api.Error{Code: api.ErrCodeReset, Message: "reset failed", Cause: err}
	} else if v, ok := any(res).(api.Validator); ok && !v.Valid() {
		cause = errInvalidResource
	}

	p.mu.Lock()
	if p.closed {
		p.outstanding--
		p.mu.Unlock()
		p.teardown(res)
		return api.ErrPoolClosed
	}
	if cause != nil {
		// Discard and let one waiter create a fresh replacement.
		p.outstanding--
		p.grantPermitLocked()
		p.mu.Unlock()
		p.discarded.Add(1)
		p.teardown(res)
		if p.onDiscard != nil {
			p.onDiscard(res, cause)
		}
		return nil
	}
	if p.grantResourceLocked(res) {
		p.mu.Unlock()
		return nil
	}
	p.available.Add(res)
	p.mu.Unlock()
	return nil
}

// Close implements api.Pool. Parked acquirers fail with ErrPoolClosed and
// idle resources are torn down; leased resources are torn down when their
// Release arrives.
func (p *Bounded[T]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.closedCh)
	var idle []T
	for p.available.Length() > 0 {
		idle = append(idle, p.available.Remove().(T))
		p.outstanding--
	}
	for p.waiters.Length() > 0 {
		p.waiters.Remove()
	}
	p.mu.Unlock()
	for _, res := range idle {
		p.teardown(res)
	}
	return nil
}

// Stats implements api.Pool.
func (p *Bounded[T]) Stats() api.PoolStats {
	p.mu.Lock()
	st := api.PoolStats{
		Capacity:    p.capacity,
		Available:   p.available.Length(),
		Outstanding: p.outstanding,
		Waiting:     p.waiting,
	}
	p.mu.Unlock()
	st.TotalCreated = p.created.Load()
	st.TotalReused = p.reused.Load()
	st.TotalDiscarded = p.discarded.Load()
	st.TotalTimeouts = p.timeouts.Load()
	return st
}

// nextWaiterLocked pops cancelled cells and returns the first live waiter.
func (p *Bounded[T]) nextWaiterLocked() *waiter[T] {
	for p.waiters.Length() > 0 {
		w := p.waiters.Remove().(*waiter[T])
		if w.cancelled {
			continue
		}
		return w
	}
	return nil
}

// grantResourceLocked hands res to the longest-waiting live caller and
// records the lease. Returns false when nobody is waiting.
func (p *Bounded[T]) grantResourceLocked(res T) bool {
	w := p.nextWaiterLocked()
	if w == nil {
		return false
	}
	w.granted = true
	p.waiting--
	p.leased[res] = struct{}{}
	w.ready <- grant[T]{res: res, direct: true}
	return true
}

// grantPermitLocked reserves a freed capacity slot for one waiter, which
// then runs the factory itself.
func (p *Bounded[T]) grantPermitLocked() {
	if p.closed {
		return
	}
	w := p.nextWaiterLocked()
	if w == nil {
		return
	}
	w.granted = true
	p.waiting--
	p.outstanding++
	w.ready <- grant[T]{}
}

// requeueLocked returns a granted-but-unclaimed resource to circulation.
// Reports whether the caller must tear the resource down instead.
func (p *Bounded[T]) requeueLocked(res T) (destroy bool) {
	delete(p.leased, res)
	if p.closed {
		p.outstanding--
		return true
	}
	if p.grantResourceLocked(res) {
		return false
	}
	p.available.Add(res)
	return false
}

func (p *Bounded[T]) teardown(res T) {
	if c, ok := any(res).(api.Closer); ok {
		_ = c.Close()
	}
}
