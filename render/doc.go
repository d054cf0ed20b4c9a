// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render records the engine's per-frame GPU work.
//
// A frame is one command buffer: acquire it, acquire the window's next
// swapchain texture, run the passes, submit. The only pass today is
// ClearPass, which clears the swapchain texture to a solid color.
//
// # Skipped frames
//
// A swapchain may have nothing to draw into (minimized window, outdated
// surface). The device then reports a nil texture; ClearPass draws nothing
// but still submits the empty command buffer, so the frame is skipped
// rather than failed.
//
// # Errors
//
// Failures to acquire the command buffer or the texture wrap
// gpucore.ErrSwapchainAcquire. Render pass and submission failures wrap
// gpucore.ErrSubmit. The caller treats both as fatal.
package render
