// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glfw implements gpucore.Platform on GLFW 3.3.
//
// Windows are created without a client API so a GPU device can claim them
// through their native handles. Input arrives through GLFW callbacks, which
// append to an event queue drained by PollEvent.
//
// GLFW must run on the main OS thread. Callers lock it before Init:
//
//	func init() { runtime.LockOSThread() }
//
// Native handles per platform:
//
//   - Linux/BSD (X11, default): Display*, Window
//   - Linux/BSD (-tags wayland): wl_display*, wl_surface*
//   - Windows: HWND
//   - macOS: a CAMetalLayer attached to the window's content view
package glfw
