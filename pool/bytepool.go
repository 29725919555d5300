// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"context"

	"github.com/momentics/hioload-pool/api"
)

// Buffer is a fixed-capacity byte buffer satisfying the resource
// contracts. Reset reslices to full length; zeroing is opt-in since most
// callers overwrite the buffer anyway.
type Buffer struct {
	data []byte
	zero bool
}

// Bytes returns the current buffer contents.
func (b *Buffer) Bytes() []byte { return b.data }

// Truncate shrinks the visible window to n bytes.
func (b *Buffer) Truncate(n int) {
	if n >= 0 && n <= cap(b.data) {
		b.data = b.data[:n]
	}
}

// Reset restores the buffer to its full length, clearing contents when
// the owning pool was created with zeroing enabled.
func (b *Buffer) Reset() error {
	b.data = b.data[:cap(b.data)]
	if b.zero {
		for i := range b.data {
			b.data[i] = 0
		}
	}
	return nil
}

// BytePool is a bounded pool of fixed-size byte buffers. Unlike a plain
// sync.Pool it enforces back-pressure: at most capacity buffers exist and
// GetBuffer parks the caller when all are leased.
type BytePool struct {
	pool *Bounded[*Buffer]
}

// NewBytePool creates a pool of capacity buffers of size bytes each.
func NewBytePool(size, capacity int, zeroOnReset bool, opts ...Option[*Buffer]) (*BytePool, error) {
	if size <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "buffer size must be positive")
	}
	factory := api.FactoryFunc[*Buffer](func() (*Buffer, error) {
		return &Buffer{data: make([]byte, size), zero: zeroOnReset}, nil
	})
	p, err := New[*Buffer](factory, capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &BytePool{pool: p}, nil
}

// GetBuffer returns a buffer from the pool, blocking under exhaustion.
func (b *BytePool) GetBuffer(ctx context.Context) (*Buffer, error) {
	return b.pool.Acquire(ctx)
}

// PutBuffer returns a buffer to the pool.
func (b *BytePool) PutBuffer(buf *Buffer) error {
	return b.pool.Release(buf)
}

// Close tears the pool down.
func (b *BytePool) Close() error { return b.pool.Close() }

// Stats reports the underlying pool accounting.
func (b *BytePool) Stats() api.PoolStats { return b.pool.Stats() }
