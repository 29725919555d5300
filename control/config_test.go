// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigStore_SnapshotAndListeners(t *testing.T) {
	cs := NewConfigStore()
	if len(cs.GetSnapshot()) != 0 {
		t.Error("Expected empty config on init")
	}

	called := false
	cs.OnReload(func() { called = true })
	cs.SetConfig(map[string]any{"capacity": 8})
	if !called {
		t.Error("Reload listener not called")
	}

	snap := cs.GetSnapshot()
	if snap["capacity"] != 8 {
		t.Errorf("Snapshot missing merged value: %+v", snap)
	}
	snap["capacity"] = 99
	if cs.GetSnapshot()["capacity"] != 8 {
		t.Error("Snapshot aliases internal state")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pools.toml")
	content := `
[pools.conns]
capacity = 8
prefill = 2

[pools.buffers]
capacity = 4
buffer_size = 4096
zero_on_reset = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	conns := cfg.Pools["conns"]
	if conns.Capacity != 8 || conns.Prefill != 2 {
		t.Errorf("Unexpected conns config: %+v", conns)
	}
	if conns.BufferSize != DefaultPoolConfig().BufferSize {
		t.Errorf("Omitted field did not default: %+v", conns)
	}
	buffers := cfg.Pools["buffers"]
	if buffers.Capacity != 4 || buffers.BufferSize != 4096 || !buffers.ZeroOnReset {
		t.Errorf("Unexpected buffers config: %+v", buffers)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestWatchFile_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pools.toml")
	if err := os.WriteFile(path, []byte("[pools.conns]\ncapacity = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *FileConfig, 4)
	w, err := WatchFile(path, func(cfg *FileConfig, err error) {
		if err != nil {
			t.Errorf("Reload error: %v", err)
			return
		}
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[pools.conns]\ncapacity = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Pools["conns"].Capacity == 16 {
				return
			}
			// partial write observed first; keep waiting
		case <-deadline:
			t.Fatal("Config change never observed")
		}
	}
}
