// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/wgpu"
)

var errFinished = errors.New("wgpu: command buffer already submitted or cancelled")

// commandBuffer records one frame into a wgpu command encoder.
type commandBuffer struct {
	dev      *Device
	encoder  *wgpu.CommandEncoder
	acquired []*surfaceTexture
	done     bool
}

func (c *commandBuffer) AcquireSwapchainTexture(w gpucore.NativeWindow) (gpucore.Texture, error) {
	if c.done {
		return nil, errFinished
	}
	sc, ok := c.dev.swapchains[w.ID()]
	if !ok {
		return nil, ErrNotClaimed
	}

	fw, fh := w.FramebufferSize()
	if fw <= 0 || fh <= 0 {
		return nil, nil
	}
	if sc.needsConfigure(fw, fh) {
		if err := c.dev.configure(sc); err != nil {
			return nil, err
		}
	}

	st, suboptimal, err := sc.surface.GetCurrentTexture()
	if err != nil {
		if skipFrame(err) {
			c.dev.gpu.Logger().Debug("wgpu: skipping frame", "window", w.ID(), "reason", err)
			sc.stale = true
			return nil, nil
		}
		return nil, err
	}
	if suboptimal {
		sc.stale = true
	}

	view, err := st.CreateView(nil)
	if err != nil {
		sc.surface.DiscardTexture()
		return nil, fmt.Errorf("wgpu: create swapchain view: %w", err)
	}
	tex := &surfaceTexture{
		sc:     sc,
		st:     st,
		view:   view,
		width:  sc.config.Width,
		height: sc.config.Height,
		format: sc.config.Format,
	}
	c.acquired = append(c.acquired, tex)
	return tex, nil
}

func (c *commandBuffer) BeginRenderPass(targets ...gpucore.ColorTarget) (gpucore.RenderPass, error) {
	if c.done {
		return nil, errFinished
	}
	attachments := make([]wgpu.RenderPassColorAttachment, 0, len(targets))
	for _, t := range targets {
		tex, ok := t.Texture.(*surfaceTexture)
		if !ok {
			return nil, fmt.Errorf("wgpu: foreign texture %T", t.Texture)
		}
		attachments = append(attachments, wgpu.RenderPassColorAttachment{
			View:       tex.view,
			LoadOp:     t.LoadOp,
			StoreOp:    t.StoreOp,
			ClearValue: t.ClearColor,
		})
	}
	pass, err := c.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "frame",
		ColorAttachments: attachments,
	})
	if err != nil {
		return nil, err
	}
	return pass, nil
}

// Submit finishes the encoder, submits it and presents every acquired
// swapchain texture.
func (c *commandBuffer) Submit() error {
	if c.done {
		return errFinished
	}
	c.done = true

	cmd, err := c.encoder.Finish()
	if err != nil {
		c.discard()
		return fmt.Errorf("wgpu: finish encoder: %w", err)
	}
	if _, err := c.dev.device.Queue().Submit(cmd); err != nil {
		c.discard()
		return fmt.Errorf("wgpu: submit: %w", err)
	}

	var presentErr error
	for _, tex := range c.acquired {
		if err := tex.sc.surface.Present(tex.st); err != nil {
			if skipFrame(err) {
				tex.sc.stale = true
			} else if presentErr == nil {
				presentErr = fmt.Errorf("wgpu: present: %w", err)
			}
		}
		tex.view.Release()
	}
	c.acquired = nil
	return presentErr
}

// Cancel drops the encoder and hands acquired textures back to their
// surfaces unpresented.
func (c *commandBuffer) Cancel() {
	if c.done {
		return
	}
	c.done = true
	c.encoder.DiscardEncoding()
	c.discard()
}

func (c *commandBuffer) discard() {
	for _, tex := range c.acquired {
		tex.view.Release()
		tex.sc.surface.DiscardTexture()
	}
	c.acquired = nil
}

var _ gpucore.CommandBuffer = (*commandBuffer)(nil)
