// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload
// propagation, plus TOML file loading for declarative pool settings.

package control

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// PoolConfig is the declarative shape of one pool in a config file.
type PoolConfig struct {
	Capacity    int  `toml:"capacity"`
	Prefill     int  `toml:"prefill"`
	BufferSize  int  `toml:"buffer_size"`
	ZeroOnReset bool `toml:"zero_on_reset"`
}

// DefaultPoolConfig returns default pool settings.
// These sane defaults support typical use cases without extensive tuning.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Capacity:    16,        // bound on simultaneously existing resources
		Prefill:     0,         // lazy creation unless warmed explicitly
		BufferSize:  64 * 1024, // 64 KiB buffers for BytePool users
		ZeroOnReset: false,     // callers overwrite buffers; zeroing is opt-in
	}
}

// FileConfig is the top-level config file layout: named pool sections.
type FileConfig struct {
	Pools map[string]PoolConfig `toml:"pools"`
}

// LoadFile parses a TOML config file into named pool configs. Sections
// omit fields freely; omitted fields keep their defaults.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &FileConfig{Pools: make(map[string]PoolConfig)}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	for name, pc := range cfg.Pools {
		def := DefaultPoolConfig()
		if pc.Capacity == 0 {
			pc.Capacity = def.Capacity
		}
		if pc.BufferSize == 0 {
			pc.BufferSize = def.BufferSize
		}
		cfg.Pools[name] = pc
	}
	return cfg, nil
}

// ConfigStore is a dynamic key/value map with atomic snapshot and
// listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and dispatches reload listeners.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
