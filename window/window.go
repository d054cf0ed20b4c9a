// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window owns the application's native window.
package window

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
	"github.com/gogpu/gpucontext"
)

// Specification describes the window to create. It is not modified after
// the Window is constructed.
type Specification struct {
	Title  string
	Width  uint32
	Height uint32
	Flags  gpucore.WindowFlags
}

// DefaultSpecification returns a hidden, resizable 1280x720 window titled
// "Window". The window is shown once a GPU device has claimed it.
func DefaultSpecification() Specification {
	return Specification{
		Title:  "Window",
		Width:  1280,
		Height: 720,
		Flags:  gpucore.WindowResizable | gpucore.WindowHidden,
	}
}

func (s Specification) descriptor() gpucore.WindowDescriptor {
	return gpucore.WindowDescriptor{
		Title:  s.Title,
		Width:  s.Width,
		Height: s.Height,
		Flags:  s.Flags,
	}
}

// Window owns exactly one native window. The handle is either nil or valid;
// only Create makes it valid.
type Window struct {
	spec     Specification
	platform gpucore.Platform
	native   gpucore.NativeWindow
	log      *slog.Logger
}

var _ gpucontext.WindowProvider = (*Window)(nil)

// New returns a Window that creates its native window on platform. A nil
// logger disables logging.
func New(platform gpucore.Platform, spec Specification, log *slog.Logger) *Window {
	return &Window{spec: spec, platform: platform, log: logging.Or(log)}
}

// Create constructs the native window. Calling Create on a window that
// already exists is a no-op.
func (w *Window) Create() error {
	if w.native != nil {
		return nil
	}
	native, err := w.platform.CreateWindow(w.spec.descriptor())
	if err != nil {
		w.log.Error("window: create failed", "title", w.spec.Title, "error", err)
		return fmt.Errorf("%w: %w", gpucore.ErrWindowCreate, err)
	}
	w.native = native
	w.log.Info("window: created",
		"title", w.spec.Title,
		"width", w.spec.Width,
		"height", w.spec.Height,
		"id", native.ID())
	return nil
}

// Destroy releases the native window. It is safe to call on a window that
// was never created or is already destroyed.
func (w *Window) Destroy() {
	if w.native == nil {
		return
	}
	w.native.Destroy()
	w.native = nil
	w.log.Debug("window: destroyed", "title", w.spec.Title)
}

// Update presents the window's surface.
func (w *Window) Update() {
	if w.native != nil {
		w.native.Present()
	}
}

// Show makes a hidden window visible.
func (w *Window) Show() {
	if w.native != nil {
		w.native.Show()
	}
}

// Valid reports whether the native window exists.
func (w *Window) Valid() bool { return w.native != nil }

// Native returns the native window, or nil before Create.
func (w *Window) Native() gpucore.NativeWindow { return w.native }

// ID returns the native window's ID, or zero before Create.
func (w *Window) ID() gpucore.WindowID {
	if w.native == nil {
		return 0
	}
	return w.native.ID()
}

// Specification returns the specification the window was built from.
func (w *Window) Specification() Specification { return w.spec }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() mgl32.Vec2 {
	if w.native == nil {
		return mgl32.Vec2{}
	}
	fw, fh := w.native.FramebufferSize()
	return mgl32.Vec2{float32(fw), float32(fh)}
}

// MousePos returns the cursor position relative to the window.
func (w *Window) MousePos() mgl32.Vec2 {
	if w.native == nil {
		return mgl32.Vec2{}
	}
	x, y := w.native.CursorPos()
	return mgl32.Vec2{float32(x), float32(y)}
}

// ShouldClose reports whether events of type t ask this window to close.
func (w *Window) ShouldClose(t gpucore.EventType) bool {
	return ShouldClose(t)
}

// ShouldClose reports whether t is a window close request. Application
// quit is not a close request.
func ShouldClose(t gpucore.EventType) bool {
	return t == gpucore.EventWindowCloseRequested
}

// Size returns the window size in screen coordinates. Before Create it
// returns the specified size.
func (w *Window) Size() (width, height int) {
	if w.native == nil {
		return int(w.spec.Width), int(w.spec.Height)
	}
	return w.native.Size()
}

// ScaleFactor returns the ratio between pixels and screen coordinates.
func (w *Window) ScaleFactor() float64 {
	if w.native == nil {
		return 1.0
	}
	if s := w.native.ContentScale(); s > 0 {
		return s
	}
	return 1.0
}

// RequestRedraw is a no-op: the frame loop redraws continuously.
func (w *Window) RequestRedraw() {}
