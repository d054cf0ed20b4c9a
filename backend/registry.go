// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/engine/gpucore"
)

// Factory creates a GPU. It returns an error when the backend cannot run
// on this machine.
type Factory func() (gpucore.GPU, error)

// priority lists backends Default tries first, in order. Backends not
// listed follow, sorted by name.
var priority = []string{BackendWGPU, BackendSoftware}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var global = &registry{factories: make(map[string]Factory)}

// Register makes a backend available under name, replacing any earlier
// factory of that name. Backend packages call it from init.
func Register(name string, factory Factory) {
	global.mu.Lock()
	global.factories[name] = factory
	global.mu.Unlock()
}

// Unregister drops the backend registered under name.
func Unregister(name string) {
	global.mu.Lock()
	delete(global.factories, name)
	global.mu.Unlock()
}

// Available returns the registered backend names, sorted.
func Available() []string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	names := make([]string, 0, len(global.factories))
	for name := range global.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	_, found := global.factories[name]
	return found
}

// Get creates the GPU registered under name and hands it the backend
// logger.
func Get(name string) (gpucore.GPU, error) {
	global.mu.RLock()
	factory, found := global.factories[name]
	global.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	g, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	propagateLogger(g)
	return g, nil
}

// Default creates the first GPU in priority order whose factory succeeds
// and returns it with its backend name.
func Default() (gpucore.GPU, string, error) {
	for _, name := range order() {
		g, err := Get(name)
		if err != nil {
			Logger().Debug("backend: skipping", "backend", name, "error", err)
			continue
		}
		return g, name, nil
	}
	return nil, "", ErrBackendNotAvailable
}

// order returns the registered names, prioritized ones first.
func order() []string {
	registered := Available()
	ordered := make([]string, 0, len(registered))
	for _, name := range priority {
		if slices.Contains(registered, name) {
			ordered = append(ordered, name)
		}
	}
	for _, name := range registered {
		if !slices.Contains(priority, name) {
			ordered = append(ordered, name)
		}
	}
	return ordered
}
