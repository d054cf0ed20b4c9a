// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

// swapchain is the surface state of one claimed window.
type swapchain struct {
	win     gpucore.NativeWindow
	surface *wgpu.Surface
	caps    *wgpu.SurfaceCapabilities
	config  wgpu.SurfaceConfiguration

	configured bool
	// stale forces a reconfigure before the next acquire.
	stale bool
}

// needsConfigure reports whether the surface must be reconfigured before
// acquiring: never configured, marked stale, or resized.
func (sc *swapchain) needsConfigure(fw, fh int) bool {
	return !sc.configured || sc.stale ||
		uint32(fw) != sc.config.Width || uint32(fh) != sc.config.Height
}

func (sc *swapchain) release() {
	if sc.surface == nil {
		return
	}
	if sc.configured {
		sc.surface.Unconfigure()
	}
	sc.surface.Release()
	sc.surface = nil
	sc.configured = false
}

// skipFrame reports whether an acquire error only means "no texture this
// frame".
func skipFrame(err error) bool {
	return errors.Is(err, hal.ErrSurfaceOutdated) ||
		errors.Is(err, hal.ErrTimeout) ||
		errors.Is(err, hal.ErrZeroArea)
}

// surfaceTexture is an acquired swapchain image and its view.
type surfaceTexture struct {
	sc     *swapchain
	st     *wgpu.SurfaceTexture
	view   *wgpu.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

func (t *surfaceTexture) Width() uint32                  { return t.width }
func (t *surfaceTexture) Height() uint32                 { return t.height }
func (t *surfaceTexture) Format() gputypes.TextureFormat { return t.format }
