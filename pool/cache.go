// File: pool/cache.go
// Package pool implements a lock-free non-blocking object cache.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/core/concurrency"
)

// Cache is a fixed-capacity freelist for hot paths that must never park.
// Get dequeues an idle object or invokes the creator; Put resets the
// object and re-enqueues it, discarding when the freelist is full. There
// is no lease tracking and no capacity bound on objects in flight; use
// Bounded when admission control matters.
type Cache[T any] struct {
	creator func() T
	queue   *concurrency.LockFreeQueue[T]

	created   atomic.Int64
	reused    atomic.Int64
	discarded atomic.Int64
}

var _ api.ObjectPool[int] = (*Cache[int])(nil)

// NewCache creates a cache retaining at most capacity idle objects.
func NewCache[T any](creator func() T, capacity int) *Cache[T] {
	return &Cache[T]{
		creator: creator,
		queue:   concurrency.NewLockFreeQueue[T](capacity),
	}
}

// Get returns an idle object or a freshly created one. Never blocks.
func (c *Cache[T]) Get() T {
	if obj, ok := c.queue.Dequeue(); ok {
		c.reused.Add(1)
		return obj
	}
	c.created.Add(1)
	return c.creator()
}

// Put resets obj and returns it to the freelist. Objects that fail their
// reset, and objects arriving while the freelist is full, are discarded
// through the optional Closer contract.
func (c *Cache[T]) Put(obj T) {
	if r, ok := any(obj).(api.Resettable); ok {
		if err := r.Reset(); err != nil {
			c.discard(obj)
			return
		}
	}
	if !c.queue.Enqueue(obj) {
		c.discard(obj)
	}
}

func (c *Cache[T]) discard(obj T) {
	c.discarded.Add(1)
	if cl, ok := any(obj).(api.Closer); ok {
		_ = cl.Close()
	}
}

// Stats reports cache accounting. Available is approximate under
// concurrent traffic; Waiting is always zero since Get never parks.
func (c *Cache[T]) Stats() api.PoolStats {
	return api.PoolStats{
		Capacity:       c.queue.Cap(),
		Available:      c.queue.Len(),
		TotalCreated:   c.created.Load(),
		TotalReused:    c.reused.Load(),
		TotalDiscarded: c.discarded.Load(),
	}
}
