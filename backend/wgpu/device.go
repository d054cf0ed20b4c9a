// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// ErrNotClaimed is returned for windows the device has not claimed.
var ErrNotClaimed = errors.New("wgpu: window not claimed")

// Device is a gpucore.Device on a wgpu device. Resources are released in
// reverse creation order: swapchains, device, adapter, instance.
type Device struct {
	gpu *GPU

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	info     gputypes.AdapterInfo
	driver   string
	formats  gpucore.ShaderFormat

	swapchains map[gpucore.WindowID]*swapchain
}

// Driver returns the engine driver name of the adapter's backend.
func (d *Device) Driver() string { return d.driver }

// ShaderFormats returns the native format of the backend.
func (d *Device) ShaderFormats() gpucore.ShaderFormat { return d.formats }

// AdapterInfo returns the adapter description.
func (d *Device) AdapterInfo() gputypes.AdapterInfo { return d.info }

// ClaimWindow creates a surface for w and configures it for Fifo
// presentation at the current framebuffer size.
func (d *Device) ClaimWindow(w gpucore.NativeWindow) error {
	if _, ok := d.swapchains[w.ID()]; ok {
		return fmt.Errorf("wgpu: window %d already claimed", w.ID())
	}
	h := w.Handle()
	surface, err := d.instance.CreateSurface(h.Display, h.Window)
	if err != nil {
		return err
	}

	caps := d.adapter.GetSurfaceCapabilities(surface)
	if caps == nil {
		caps = &wgpu.SurfaceCapabilities{PresentModes: []gputypes.PresentMode{gputypes.PresentModeFifo}}
	}
	sc := &swapchain{
		win:     w,
		surface: surface,
		caps:    caps,
		config: wgpu.SurfaceConfiguration{
			Format:      pickSurfaceFormat(caps.Formats, false),
			Usage:       wgpu.TextureUsageRenderAttachment,
			PresentMode: gputypes.PresentModeFifo,
			AlphaMode:   pickAlphaMode(caps.AlphaModes),
		},
	}
	if err := d.configure(sc); err != nil {
		surface.Release()
		return err
	}
	d.swapchains[w.ID()] = sc
	d.gpu.Logger().Debug("wgpu: window claimed",
		"window", w.ID(),
		"format", sc.config.Format.String(),
		"present_modes", len(caps.PresentModes))
	return nil
}

// ReleaseWindow unconfigures and releases the window's surface.
func (d *Device) ReleaseWindow(w gpucore.NativeWindow) {
	sc, ok := d.swapchains[w.ID()]
	if !ok {
		return
	}
	sc.release()
	delete(d.swapchains, w.ID())
}

// SupportsPresentMode reports whether the surface lists mode.
func (d *Device) SupportsPresentMode(w gpucore.NativeWindow, mode gputypes.PresentMode) bool {
	sc, ok := d.swapchains[w.ID()]
	if !ok {
		return false
	}
	for _, m := range sc.caps.PresentModes {
		if m == mode {
			return true
		}
	}
	return false
}

// SetSwapchainParameters reconfigures the surface. SDR picks a linear
// 8-bit format, SDRLinear its sRGB variant; HDR compositions are not
// available through wgpu surfaces.
func (d *Device) SetSwapchainParameters(w gpucore.NativeWindow, c gpucore.SwapchainComposition, mode gputypes.PresentMode) error {
	sc, ok := d.swapchains[w.ID()]
	if !ok {
		return ErrNotClaimed
	}
	switch c {
	case gpucore.SwapchainCompositionSDR, gpucore.SwapchainCompositionSDRLinear:
	default:
		return fmt.Errorf("wgpu: swapchain composition %v not supported", c)
	}
	if !d.SupportsPresentMode(w, mode) {
		return fmt.Errorf("wgpu: present mode %v not supported", mode)
	}
	sc.config.Format = pickSurfaceFormat(sc.caps.Formats, c == gpucore.SwapchainCompositionSDRLinear)
	sc.config.PresentMode = mode
	return d.configure(sc)
}

// SwapchainFormat returns the configured surface format.
func (d *Device) SwapchainFormat(w gpucore.NativeWindow) gputypes.TextureFormat {
	if sc, ok := d.swapchains[w.ID()]; ok {
		return sc.config.Format
	}
	return gputypes.TextureFormatUndefined
}

// AcquireCommandBuffer opens a command encoder for this frame.
func (d *Device) AcquireCommandBuffer() (gpucore.CommandBuffer, error) {
	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "frame"})
	if err != nil {
		return nil, err
	}
	return &commandBuffer{dev: d, encoder: enc}, nil
}

// WaitIdle blocks until the queue drains.
func (d *Device) WaitIdle() error {
	return d.device.WaitIdle()
}

// Destroy releases every remaining surface, then the device, adapter and
// instance.
func (d *Device) Destroy() {
	for id, sc := range d.swapchains {
		sc.release()
		delete(d.swapchains, id)
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// configure applies sc.config at the window's current framebuffer size.
// A zero-sized framebuffer (minimized window) leaves the surface
// unconfigured until it has area again.
func (d *Device) configure(sc *swapchain) error {
	fw, fh := sc.win.FramebufferSize()
	if fw <= 0 || fh <= 0 {
		sc.configured = false
		return nil
	}
	sc.config.Width = uint32(fw)
	sc.config.Height = uint32(fh)
	if err := sc.surface.Configure(d.device, &sc.config); err != nil {
		sc.configured = false
		return fmt.Errorf("wgpu: configure surface %dx%d: %w", fw, fh, err)
	}
	sc.configured = true
	sc.stale = false
	return nil
}

var _ gpucore.Device = (*Device)(nil)
