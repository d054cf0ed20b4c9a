// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || freebsd || netbsd || openbsd) && !wayland

package glfw

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/engine/gpucore"
)

func nativeHandle(w *glfw.Window) (gpucore.NativeHandle, error) {
	display := uintptr(unsafe.Pointer(glfw.GetX11Display()))
	window := uintptr(w.GetX11Window())
	if display == 0 || window == 0 {
		return gpucore.NativeHandle{}, errors.New("glfw: no X11 window handle")
	}
	return gpucore.NativeHandle{Display: display, Window: window}, nil
}
