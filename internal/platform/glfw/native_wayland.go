// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || freebsd || netbsd || openbsd) && wayland

package glfw

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/engine/gpucore"
)

func nativeHandle(w *glfw.Window) (gpucore.NativeHandle, error) {
	display := uintptr(unsafe.Pointer(glfw.GetWaylandDisplay()))
	surface := uintptr(unsafe.Pointer(w.GetWaylandWindow()))
	if display == 0 || surface == 0 {
		return gpucore.NativeHandle{}, errors.New("glfw: no Wayland surface")
	}
	return gpucore.NativeHandle{Display: display, Window: surface}, nil
}
