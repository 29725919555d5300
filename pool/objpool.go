// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import (
	"sync"

	"github.com/momentics/hioload-pool/api"
)

// SyncPool wraps sync.Pool for generic usage. It is the unbounded
// complement to Bounded: no capacity enforcement, no lease tracking, and
// idle objects may be reclaimed by the GC at any time.
type SyncPool[T any] struct {
	pool *sync.Pool
}

var _ api.ObjectPool[int] = (*SyncPool[int])(nil)

// NewSyncPool creates a new SyncPool with a creator function.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return &SyncPool[T]{
		pool: &sync.Pool{New: func() any { return creator() }},
	}
}

func (sp *SyncPool[T]) Get() T {
	return sp.pool.Get().(T)
}

// Put resets obj when it implements the resource contract and returns it
// for reuse; an object whose reset fails is dropped.
func (sp *SyncPool[T]) Put(obj T) {
	if r, ok := any(obj).(api.Resettable); ok {
		if err := r.Reset(); err != nil {
			return
		}
	}
	sp.pool.Put(obj)
}
