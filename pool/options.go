// File: pool/options.go
// Package pool defines functional options for the bounded pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-pool/api"

type options[T api.Poolable] struct {
	prefill   int
	onDiscard func(T, error)
}

// Option customizes bounded pool initialization.
type Option[T api.Poolable] func(*options[T])

// WithPrefill warms the pool with n resources at construction time
// instead of creating them lazily on first demand.
func WithPrefill[T api.Poolable](n int) Option[T] {
	return func(o *options[T]) {
		o.prefill = n
	}
}

// WithOnDiscard registers a callback invoked whenever a released resource
// is dropped after a reset failure or a rejected validity check. The
// releasing caller is not failed; this hook is the reporting channel.
func WithOnDiscard[T api.Poolable](fn func(res T, cause error)) Option[T] {
	return func(o *options[T]) {
		o.onDiscard = fn
	}
}
