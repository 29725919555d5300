// File: facade/pools.go
// Unified facade layer for hioload-pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Pools struct, which aggregates named resource
// pools behind a single control surface: registration, stats publication,
// debug probes, declarative construction from config files, and unified
// shutdown. Pools is an explicit instance handed to callers by reference;
// the library deliberately has no process-wide default pool.

package facade

import (
	"sync"

	"github.com/momentics/hioload-pool/adapters"
	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
	"github.com/momentics/hioload-pool/pool"
)

// Managed is the least a pool must expose to live in the facade.
type Managed interface {
	Close() error
	Stats() api.PoolStats
}

// Pools aggregates named pools and their observability wiring.
type Pools struct {
	mu    sync.Mutex
	ctrl  *adapters.ControlAdapter
	pools map[string]Managed
}

// New creates an empty facade with its own control adapter.
func New() *Pools {
	return &Pools{
		ctrl:  adapters.NewControlAdapter(),
		pools: make(map[string]Managed),
	}
}

// Register attaches a pool under a unique name and exposes it through
// metrics and debug probes.
func (ps *Pools) Register(name string, p Managed) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if _, ok := ps.pools[name]; ok {
		return api.NewError(api.ErrCodeInvalidArgument, "pool already registered").
			WithContext("name", name)
	}
	ps.pools[name] = p
	ps.ctrl.PublishPool(name, p)
	return nil
}

// NewBytePool constructs a byte-buffer pool from declarative settings and
// registers it.
func (ps *Pools) NewBytePool(name string, cfg control.PoolConfig) (*pool.BytePool, error) {
	bp, err := pool.NewBytePool(cfg.BufferSize, cfg.Capacity, cfg.ZeroOnReset,
		pool.WithPrefill[*pool.Buffer](cfg.Prefill))
	if err != nil {
		return nil, err
	}
	if err := ps.Register(name, bp); err != nil {
		bp.Close()
		return nil, err
	}
	return bp, nil
}

// Get returns a registered pool by name.
func (ps *Pools) Get(name string) (Managed, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.pools[name]
	return p, ok
}

// Control exposes the aggregated control surface.
func (ps *Pools) Control() api.Control { return ps.ctrl }

// PublishStats re-snapshots every registered pool into the metric
// registry. Call periodically or before scraping.
func (ps *Pools) PublishStats() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for name, p := range ps.pools {
		ps.ctrl.PublishPool(name, p)
	}
}

// DumpStateJSON renders all pool probes as JSON.
func (ps *Pools) DumpStateJSON() ([]byte, error) {
	return ps.ctrl.DumpStateJSON()
}

// Close shuts every registered pool down; the first error wins but all
// pools are closed.
func (ps *Pools) Close() error {
	ps.mu.Lock()
	pools := make([]Managed, 0, len(ps.pools))
	for _, p := range ps.pools {
		pools = append(pools, p)
	}
	ps.pools = make(map[string]Managed)
	ps.mu.Unlock()

	var first error
	for _, p := range pools {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
