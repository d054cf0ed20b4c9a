// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/engine/backend"
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger configures the logger for the engine and its GPU backends.
// By default the engine produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used by the engine:
//   - [slog.LevelDebug]: per-frame and driver selection diagnostics
//   - [slog.LevelInfo]: lifecycle events (window created, driver selected)
//   - [slog.LevelWarn]: non-fatal issues (release errors, skipped frames)
//   - [slog.LevelError]: fatal failures, logged once before being returned
//
// Example:
//
//	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	l = logging.Or(l)
	loggerPtr.Store(l)
	backend.SetLogger(l)

	// The running application's GPU was created with the previous logger.
	if ls, ok := activeGPU().(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// Logger returns the current engine logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by GPUs that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

var (
	activeMu sync.RWMutex
	active   gpucore.GPU
)

// activate makes g the GPU SetLogger reaches. The latest running
// application wins.
func activate(g gpucore.GPU) {
	activeMu.Lock()
	active = g
	activeMu.Unlock()
}

// deactivate clears the active GPU if it is still g.
func deactivate(g gpucore.GPU) {
	activeMu.Lock()
	if active == g {
		active = nil
	}
	activeMu.Unlock()
}

// activeGPU returns the GPU of the running application, or nil.
func activeGPU() gpucore.GPU {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}
