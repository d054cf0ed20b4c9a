// Package backend selects the GPU implementation the engine runs on.
//
// GPU implementations register themselves from init functions and are
// chosen at runtime by priority. The software backend is always
// registered; the wgpu backend registers itself when imported:
//
//	import _ "github.com/gogpu/engine/backend/wgpu"
//
// # Backend Selection
//
// Use Default to get the best available GPU, or Get to request one by name:
//
//	// Best available: wgpu, then software
//	gpu, name, err := backend.Default()
//
//	// Or a specific backend
//	gpu, err := backend.Get(backend.BackendSoftware)
//
// # Logging
//
// SetLogger stores a logger handed to every GPU created afterwards that
// accepts one.
package backend
