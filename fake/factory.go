// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"errors"
	"sync/atomic"
)

// ErrCreateFailed is returned by a Factory programmed to fail.
var ErrCreateFailed = errors.New("fake: resource creation failed")

// Factory builds *Resource instances and counts invocations. FailNext
// makes a bounded number of upcoming creations fail, for exercising
// rollback paths.
type Factory struct {
	Created  atomic.Int64
	failures atomic.Int64
}

// New implements api.Factory[*Resource].
func (f *Factory) New() (*Resource, error) {
	for {
		n := f.failures.Load()
		if n <= 0 {
			break
		}
		if f.failures.CompareAndSwap(n, n-1) {
			return nil, ErrCreateFailed
		}
	}
	id := int(f.Created.Add(1))
	return &Resource{ID: id}, nil
}

// FailNext programs the next n creations to fail.
func (f *Factory) FailNext(n int) { f.failures.Store(int64(n)) }
