// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"errors"
	"sync/atomic"
)

// ErrResetFailed is returned by a Resource programmed to fail its reset.
var ErrResetFailed = errors.New("fake: reset failed")

// Resource is a programmable pooled-resource stub for testing. All
// counters are atomic so assertions can run while pool goroutines are
// still in flight.
type Resource struct {
	ID int

	Resets  atomic.Int64
	Closes  atomic.Int64
	invalid atomic.Bool
	failRst atomic.Bool
}

// Reset counts invocations and fails when programmed to.
func (r *Resource) Reset() error {
	r.Resets.Add(1)
	if r.failRst.Load() {
		return ErrResetFailed
	}
	return nil
}

// Valid reports the programmed validity flag.
func (r *Resource) Valid() bool { return !r.invalid.Load() }

// Close counts teardown invocations.
func (r *Resource) Close() error {
	r.Closes.Add(1)
	return nil
}

// FailNextResets makes every subsequent Reset fail (until cleared).
func (r *Resource) FailNextResets(fail bool) { r.failRst.Store(fail) }

// SetInvalid flips the validity flag.
func (r *Resource) SetInvalid(invalid bool) { r.invalid.Store(invalid) }
