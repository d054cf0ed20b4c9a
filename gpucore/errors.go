// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "errors"

// Initialization failures.
var (
	// ErrPlatformInit is returned when the windowing system fails to start.
	ErrPlatformInit = errors.New("engine: platform initialization failed")

	// ErrWindowCreate is returned when the native window cannot be created.
	ErrWindowCreate = errors.New("engine: window creation failed")

	// ErrDeviceCreate is returned when no GPU device can be created.
	ErrDeviceCreate = errors.New("engine: GPU device creation failed")

	// ErrClaimWindow is returned when the device cannot claim the window.
	ErrClaimWindow = errors.New("engine: failed to claim window for GPU device")
)

// Frame failures.
var (
	// ErrSwapchainAcquire is returned when the command buffer or the
	// swapchain texture cannot be acquired.
	ErrSwapchainAcquire = errors.New("engine: failed to acquire swapchain texture")

	// ErrSubmit is returned when a command buffer cannot be submitted.
	ErrSubmit = errors.New("engine: failed to submit command buffer")
)

// ErrUnsupportedShaderFormat is returned by a GPU when the requested driver
// consumes none of the requested shader formats.
var ErrUnsupportedShaderFormat = errors.New("engine: driver consumes none of the requested shader formats")

// IsInitFailure reports whether err is an initialization failure.
func IsInitFailure(err error) bool {
	return errors.Is(err, ErrPlatformInit) ||
		errors.Is(err, ErrWindowCreate) ||
		errors.Is(err, ErrDeviceCreate) ||
		errors.Is(err, ErrClaimWindow)
}

// IsFrameFailure reports whether err is a per-frame failure.
func IsFrameFailure(err error) bool {
	return errors.Is(err, ErrSwapchainAcquire) || errors.Is(err, ErrSubmit)
}
