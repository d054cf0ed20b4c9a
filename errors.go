// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"errors"

	"github.com/gogpu/engine/gpucore"
)

// Initialization failures. Init returns them wrapped with the native
// library's error.
var (
	ErrPlatformInit = gpucore.ErrPlatformInit
	ErrWindowCreate = gpucore.ErrWindowCreate
	ErrDeviceCreate = gpucore.ErrDeviceCreate
	ErrClaimWindow  = gpucore.ErrClaimWindow
)

// Frame failures. Iterate returns them wrapped; the loop stops.
var (
	ErrSwapchainAcquire = gpucore.ErrSwapchainAcquire
	ErrSubmit           = gpucore.ErrSubmit
)

// Lifecycle misuse.
var (
	ErrNotRunning     = errors.New("engine: application not running")
	ErrAlreadyRunning = errors.New("engine: application already initialized")
)

// IsInitFailure reports whether err is an initialization failure.
func IsInitFailure(err error) bool { return gpucore.IsInitFailure(err) }

// IsFrameFailure reports whether err is a frame failure.
func IsFrameFailure(err error) bool { return gpucore.IsFrameFailure(err) }
