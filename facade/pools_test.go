// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade_test

import (
	"context"
	"errors"
	"testing"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
	"github.com/momentics/hioload-pool/facade"
	"github.com/momentics/hioload-pool/fake"
	"github.com/momentics/hioload-pool/pool"
)

func TestPools_RegisterAndStats(t *testing.T) {
	hub := facade.New()
	defer hub.Close()

	f := &fake.Factory{}
	p, err := pool.New[*fake.Resource](f, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := hub.Register("conns", p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := hub.Register("conns", p); err == nil {
		t.Error("Duplicate registration accepted")
	}

	res, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	hub.PublishStats()
	stats := hub.Control().Stats()
	if stats["conns.outstanding"] != 1 {
		t.Errorf("Published stats stale: %+v", stats)
	}
	_ = p.Release(res)

	if got, ok := hub.Get("conns"); !ok || got.Stats().Capacity != 2 {
		t.Error("Get did not return registered pool")
	}
	if _, ok := hub.Get("nope"); ok {
		t.Error("Get returned unregistered pool")
	}
}

func TestPools_NewBytePoolFromConfig(t *testing.T) {
	hub := facade.New()
	defer hub.Close()

	cfg := control.DefaultPoolConfig()
	cfg.Capacity = 2
	cfg.BufferSize = 64
	cfg.Prefill = 1

	bp, err := hub.NewBytePool("buffers", cfg)
	if err != nil {
		t.Fatalf("NewBytePool failed: %v", err)
	}
	st := bp.Stats()
	if st.Capacity != 2 || st.Available != 1 {
		t.Errorf("Config not applied: %+v", st)
	}

	raw, err := hub.DumpStateJSON()
	if err != nil || len(raw) == 0 {
		t.Fatalf("DumpStateJSON failed: %v", err)
	}
}

func TestPools_CloseClosesAll(t *testing.T) {
	hub := facade.New()

	f := &fake.Factory{}
	p, _ := pool.New[*fake.Resource](f, 1)
	if err := hub.Register("conns", p); err != nil {
		t.Fatal(err)
	}
	if err := hub.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := p.Acquire(context.Background()); !errors.Is(err, api.ErrPoolClosed) {
		t.Errorf("Registered pool not closed: %v", err)
	}
}
