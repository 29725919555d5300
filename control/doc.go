// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration control, and debug introspection layer
// for hioload-pool.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - TOML config files with fsnotify-driven hot reload
//   - Pool stats publication into a metrics registry
//   - State export, debug hooks, and probe registration
package control
