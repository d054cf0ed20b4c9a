// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package glfw

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/engine/gpucore"
)

func nativeHandle(w *glfw.Window) (gpucore.NativeHandle, error) {
	hwnd := uintptr(unsafe.Pointer(w.GetWin32Window()))
	if hwnd == 0 {
		return gpucore.NativeHandle{}, errors.New("glfw: no HWND")
	}
	return gpucore.NativeHandle{Window: hwnd}, nil
}
