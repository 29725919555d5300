// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

func TestBytePool_ReuseAndSize(t *testing.T) {
	bp, err := pool.NewBytePool(128, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer bp.Close()

	b1, err := bp.GetBuffer(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(b1.Bytes()) != 128 {
		t.Fatalf("Expected 128-byte buffer, got %d", len(b1.Bytes()))
	}
	b1.Truncate(10)
	if err := bp.PutBuffer(b1); err != nil {
		t.Fatal(err)
	}

	b2, err := bp.GetBuffer(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if b2 != b1 {
		t.Error("Expected buffer reuse")
	}
	if len(b2.Bytes()) != 128 {
		t.Errorf("Reset did not restore full length: %d", len(b2.Bytes()))
	}
}

func TestBytePool_ZeroOnReset(t *testing.T) {
	bp, err := pool.NewBytePool(32, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	defer bp.Close()

	buf, _ := bp.GetBuffer(context.Background())
	for i := range buf.Bytes() {
		buf.Bytes()[i] = 0xFF
	}
	_ = bp.PutBuffer(buf)

	again, _ := bp.GetBuffer(context.Background())
	for i, b := range again.Bytes() {
		if b != 0 {
			t.Fatalf("Byte %d not zeroed on reset: %#x", i, b)
		}
	}
}

func TestBytePool_BackPressure(t *testing.T) {
	bp, err := pool.NewBytePool(16, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	defer bp.Close()

	buf, _ := bp.GetBuffer(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := bp.GetBuffer(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded under exhaustion, got %v", err)
	}

	if err := bp.PutBuffer(buf); err != nil {
		t.Fatal(err)
	}
	if st := bp.Stats(); st.Available != 1 || st.Outstanding != 1 {
		t.Errorf("Unexpected stats: %+v", st)
	}
}

func TestBytePool_InvalidSize(t *testing.T) {
	if _, err := pool.NewBytePool(0, 1, false); err == nil {
		t.Error("Expected error for zero buffer size")
	}
	if _, err := pool.NewBytePool(16, 0, false); !errors.Is(err, api.ErrInvalidCapacity) {
		t.Errorf("Expected ErrInvalidCapacity, got %v", err)
	}
}
