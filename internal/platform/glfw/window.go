// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/engine/gpucore"
)

// Window is a GLFW window without a client API.
type Window struct {
	platform *Platform
	win      *glfw.Window
	id       gpucore.WindowID
	handle   gpucore.NativeHandle
}

func (w *Window) ID() gpucore.WindowID { return w.id }

func (w *Window) Show() {
	if w.win != nil {
		w.win.Show()
	}
}

// Present is a no-op: the GPU device presents through its surface.
func (w *Window) Present() {}

func (w *Window) Size() (width, height int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetSize()
}

func (w *Window) FramebufferSize() (width, height int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

func (w *Window) CursorPos() (x, y float64) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetCursorPos()
}

// ContentScale returns the horizontal content scale.
func (w *Window) ContentScale() float64 {
	if w.win == nil {
		return 1
	}
	sx, _ := w.win.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return float64(sx)
}

func (w *Window) Handle() gpucore.NativeHandle { return w.handle }

func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.platform.forget(w)
	w.win.Destroy()
	w.win = nil
	w.handle = gpucore.NativeHandle{}
}

var _ gpucore.NativeWindow = (*Window)(nil)
