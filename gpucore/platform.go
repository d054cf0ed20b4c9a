// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "time"

// WindowDescriptor describes a native window to create.
type WindowDescriptor struct {
	Title  string
	Width  uint32
	Height uint32
	Flags  WindowFlags
}

// NativeHandle carries the raw OS handles a GPU surface is created from.
//
//   - Windows: Display 0, Window HWND
//   - macOS: Display 0, Window CAMetalLayer*
//   - X11: Display Display*, Window Window
//   - Wayland: Display wl_display*, Window wl_surface*
type NativeHandle struct {
	Display uintptr
	Window  uintptr
}

// Platform is the windowing side of the native library: it creates
// windows, reports OS events and keeps time.
//
// All methods must be called from the thread that called Init.
type Platform interface {
	// Init initializes the windowing system. It must be called once before
	// any other method.
	Init(meta AppMetadata) error

	// CreateWindow creates a native window.
	CreateWindow(desc WindowDescriptor) (NativeWindow, error)

	// PollEvent returns the next pending event, or false when the queue is
	// empty.
	PollEvent() (Event, bool)

	// Ticks returns the monotonic time since Init.
	Ticks() time.Duration

	// Terminate shuts the windowing system down. Windows still open are
	// destroyed.
	Terminate()
}

// NativeWindow is a window owned by a Platform.
type NativeWindow interface {
	// ID returns the identifier events carry for this window.
	ID() WindowID

	// Show maps a window created hidden.
	Show()

	// Present swaps the window's presentable surface. GPU-backed windows
	// present through the device; for them this is a no-op.
	Present()

	// Size returns the window size in screen coordinates.
	Size() (width, height int)

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)

	// CursorPos returns the cursor position relative to the window's
	// top-left corner.
	CursorPos() (x, y float64)

	// ContentScale returns the ratio between pixels and screen coordinates.
	ContentScale() float64

	// Handle returns the OS handles a GPU surface is created from.
	Handle() NativeHandle

	// Destroy releases the window. Calling it twice is a no-op.
	Destroy()
}
