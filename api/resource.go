// File: api/resource.go
// Author: momentics <momentics@gmail.com>
//
// Contracts a pooled resource and its factory must satisfy. Pooled types
// implement these structurally; no base type or registration is required.

package api

// Resettable is the mandatory resource contract. Reset restores the
// resource to a clean, reusable state. A pool invokes Reset on every
// release before the resource becomes eligible for reuse; a Reset error
// causes the resource to be discarded instead of repooled.
type Resettable interface {
	Reset() error
}

// Poolable constrains a bounded-pool resource type: comparable identity
// (lease tracking is per resource instance) plus the Reset contract.
// Pointer types satisfy it naturally.
type Poolable interface {
	comparable
	Resettable
}

// Validator is an optional contract. A pool that receives a resource
// reporting Valid() == false at release time discards it rather than
// handing it to the next caller. Detected by type assertion.
type Validator interface {
	Valid() bool
}

// Closer is an optional teardown contract. Pools invoke Close on every
// resource they discard and on every idle resource during pool shutdown.
// Detected by type assertion.
type Closer interface {
	Close() error
}

// Factory produces new resource instances on demand. The pool owns the
// factory for its lifetime and calls New only while holding spare
// capacity; a New error is surfaced to the acquiring caller and consumes
// no capacity.
type Factory[T any] interface {
	New() (T, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc[T any] func() (T, error)

// New calls f.
func (f FactoryFunc[T]) New() (T, error) { return f() }
