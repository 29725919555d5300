// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: bounded blocking pools with exclusive
// leases, and non-blocking object pools for transient reuse.

package api

import (
	"context"
	"time"
)

// Pool hands out exclusive, reset, reusable resources to concurrent
// callers and enforces a fixed upper bound on how many exist at once.
//
// Every successful Acquire must be paired with exactly one Release of the
// same resource. Between the two calls the caller holds the resource
// exclusively; the pool never aliases a leased resource to another caller.
type Pool[T any] interface {
	// Acquire returns an idle resource, or lazily creates one while the
	// pool is under capacity, or blocks until a resource is released.
	// Blocked callers are served in FIFO order. The context cancels the
	// wait; a cancelled Acquire holds no lease and consumed no capacity.
	Acquire(ctx context.Context) (T, error)

	// AcquireTimeout is Acquire with a wait budget. When the budget
	// elapses before a resource can be granted it fails with
	// ErrAcquireTimeout and leaves the pool state untouched.
	AcquireTimeout(d time.Duration) (T, error)

	// Release returns a leased resource. The resource is reset, optionally
	// validated, and either repooled or discarded. Releasing a resource
	// that is not currently leased fails with ErrNotLeased.
	Release(res T) error

	// Close shuts the pool down: pending and future Acquire calls fail
	// with ErrPoolClosed and idle resources are torn down. Idempotent.
	Close() error

	// Stats reports a consistent snapshot for observability and tests.
	Stats() PoolStats
}

// ObjectPool provides generic non-blocking pooling of transiently
// allocated objects. Get never parks the caller; Put may silently drop.
type ObjectPool[T any] interface {
	// Get returns an available instance from pool
	Get() T

	// Put returns an instance for reuse
	Put(obj T)
}

// PoolStats aggregates pool accounting for observability.
//
// Capacity, Available, Outstanding and Waiting form one snapshot taken
// under the pool lock. The Total* counters are cumulative since creation.
type PoolStats struct {
	Capacity    int // fixed upper bound on resources that may exist
	Available   int // idle resources ready for reuse
	Outstanding int // created resources, idle plus leased
	Waiting     int // callers currently blocked in Acquire

	TotalCreated   int64 // factory invocations that succeeded
	TotalReused    int64 // acquires satisfied from the idle set
	TotalDiscarded int64 // resources dropped after reset/validity failure
	TotalTimeouts  int64 // acquires that gave up waiting
}
