package adapters_test

import (
	"testing"

	"github.com/momentics/hioload-pool/adapters"
	"github.com/momentics/hioload-pool/api"
)

type stubPool struct{ st api.PoolStats }

func (s stubPool) Stats() api.PoolStats { return s.st }

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	cfg := ctrl.GetConfig()
	if len(cfg) != 0 {
		t.Error("Expected empty config on init")
	}
	err := ctrl.SetConfig(map[string]any{"k": 1})
	if err != nil {
		t.Fatal(err)
	}
	if ctrl.GetConfig()["k"] != 1 {
		t.Error("SetConfig did not apply")
	}
	called := false
	ctrl.OnReload(func() { called = true })
	ctrl.SetConfig(map[string]any{"x": 2})
	if !called {
		t.Error("Reload hook not called")
	}
}

func TestControlAdapterPublishPool(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	ctrl.PublishPool("conns", stubPool{st: api.PoolStats{Capacity: 4, Waiting: 1}})
	ctrl.SetMetric("custom", "v")

	stats := ctrl.Stats()
	if stats["conns.capacity"] != 4 {
		t.Errorf("Pool metric missing: %+v", stats)
	}
	if stats["custom"] != "v" {
		t.Errorf("Custom metric missing: %+v", stats)
	}
	if _, ok := stats["debug.pool.conns"]; !ok {
		t.Errorf("Pool probe missing: %+v", stats)
	}

	raw, err := ctrl.DumpStateJSON()
	if err != nil || len(raw) == 0 {
		t.Errorf("DumpStateJSON failed: %v", err)
	}
}
