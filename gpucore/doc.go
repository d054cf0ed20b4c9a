// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore defines the boundary between the engine and the native
// windowing and GPU libraries it runs on.
//
// The engine never talks to a windowing toolkit or a graphics API directly.
// It talks to a [Platform] (windows, OS events, a monotonic clock) and a
// [GPU] (driver enumeration and device creation). Concrete implementations
// live elsewhere:
//
//	               +------------------+
//	               |  engine (root)   |
//	               | window / device  |
//	               |     render       |
//	               +--------+---------+
//	                        |
//	                    gpucore
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v---------+         +---------v--------+
//	| platform/glfw    |         |  backend/wgpu    |
//	| (go-gl/glfw)     |         |  (gogpu/wgpu)    |
//	+------------------+         +------------------+
//
// # Lifecycle
//
// A [Device] is bound to at most one [NativeWindow] at a time through
// [Device.ClaimWindow]. Teardown must follow the order
// [Device.WaitIdle], [Device.ReleaseWindow], [Device.Destroy]; destroying a
// device with a command buffer in flight is undefined in every backend.
//
// # Frames
//
// Each frame acquires one [CommandBuffer], asks it for the window's next
// swapchain [Texture] and records a render pass into it. A nil texture with a
// nil error means the swapchain has nothing to present this frame (window
// minimized, surface being reconfigured); callers skip drawing and still
// submit.
package gpucore
