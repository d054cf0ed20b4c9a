// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gputypes"
)

// Solid clear colors.
var (
	Black = gputypes.Color{R: 0, G: 0, B: 0, A: 1}
	Red   = gputypes.Color{R: 1, G: 0, B: 0, A: 1}
)

// ColorFromVec4 converts an RGBA vector with components in [0, 1].
func ColorFromVec4(v mgl32.Vec4) gputypes.Color {
	return gputypes.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])}
}

// ClearPass clears a window's swapchain texture to a solid color once per
// frame.
type ClearPass struct {
	Color gputypes.Color
}

// NewClearPass returns a pass clearing to c.
func NewClearPass(c gputypes.Color) *ClearPass {
	return &ClearPass{Color: c}
}

// Execute acquires a command buffer and the window's next swapchain
// texture, clears it, and submits. When the swapchain has no texture this
// frame nothing is drawn, the empty command buffer is still submitted, and
// drawn is false.
//
// Acquisition failures wrap gpucore.ErrSwapchainAcquire; recording and
// submission failures wrap gpucore.ErrSubmit.
func (p *ClearPass) Execute(dev gpucore.Device, win gpucore.NativeWindow) (drawn bool, err error) {
	cb, err := dev.AcquireCommandBuffer()
	if err != nil {
		return false, fmt.Errorf("%w: command buffer: %w", gpucore.ErrSwapchainAcquire, err)
	}

	tex, err := cb.AcquireSwapchainTexture(win)
	if err != nil {
		cb.Cancel()
		return false, fmt.Errorf("%w: %w", gpucore.ErrSwapchainAcquire, err)
	}

	if tex != nil {
		pass, err := cb.BeginRenderPass(gpucore.ColorTarget{
			Texture:    tex,
			ClearColor: p.Color,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
		})
		if err != nil {
			cb.Cancel()
			return false, fmt.Errorf("%w: begin render pass: %w", gpucore.ErrSubmit, err)
		}
		if err := pass.End(); err != nil {
			cb.Cancel()
			return false, fmt.Errorf("%w: end render pass: %w", gpucore.ErrSubmit, err)
		}
	}

	if err := cb.Submit(); err != nil {
		return false, fmt.Errorf("%w: %w", gpucore.ErrSubmit, err)
	}
	return tex != nil, nil
}
