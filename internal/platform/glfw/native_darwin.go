// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin

package glfw

import (
	"errors"

	"github.com/ebitengine/purego/objc"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/engine/gpucore"
)

var (
	selContentView     = objc.RegisterName("contentView")
	selSetWantsLayer   = objc.RegisterName("setWantsLayer:")
	selSetLayer        = objc.RegisterName("setLayer:")
	selLayer           = objc.RegisterName("layer")
	selSetContentScale = objc.RegisterName("setContentsScale:")
)

// nativeHandle backs the window's content view with a CAMetalLayer, which
// is what the Metal surface is created from.
func nativeHandle(w *glfw.Window) (gpucore.NativeHandle, error) {
	nsWindow := objc.ID(uintptr(w.GetCocoaWindow()))
	if nsWindow == 0 {
		return gpucore.NativeHandle{}, errors.New("glfw: no NSWindow")
	}
	view := nsWindow.Send(selContentView)
	if view == 0 {
		return gpucore.NativeHandle{}, errors.New("glfw: NSWindow has no content view")
	}

	layer := objc.ID(objc.GetClass("CAMetalLayer")).Send(selLayer)
	if layer == 0 {
		return gpucore.NativeHandle{}, errors.New("glfw: CAMetalLayer unavailable")
	}
	if sx, _ := w.GetContentScale(); sx > 0 {
		layer.Send(selSetContentScale, float64(sx))
	}
	view.Send(selSetWantsLayer, true)
	view.Send(selSetLayer, layer)

	return gpucore.NativeHandle{Window: uintptr(layer)}, nil
}
