// Package pool
// Author: momentics <momentics@gmail.com>
//
// Bounded, lease-tracking resource pooling for hioload-pool.
// Implements the blocking Bounded pool (lazy creation, FIFO reuse, FIFO
// waiter wakeup, reset-before-reuse), the lock-free non-blocking Cache,
// the sync.Pool-backed SyncPool adapter, and a byte-buffer pool built on
// the bounded core.
// See bounded.go, cache.go, objpool.go, bytepool.go for details.
package pool
