// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "github.com/gogpu/gputypes"

// DeviceDescriptor describes a GPU device to create.
type DeviceDescriptor struct {
	// Formats is the set of shader formats the caller can supply. Creation
	// fails when the chosen driver consumes none of them.
	Formats ShaderFormat

	// Debug enables validation layers where the driver has them.
	Debug bool

	// Driver forces a driver by name. Empty lets the platform choose.
	Driver string
}

// GPU enumerates drivers and creates devices.
type GPU interface {
	// Drivers returns the names of the drivers compiled in and usable on
	// this machine, in the platform's enumeration order.
	Drivers() []string

	// CreateDevice creates a device.
	CreateDevice(desc DeviceDescriptor) (Device, error)
}

// Device is a logical GPU device.
type Device interface {
	// Driver returns the name of the driver backing this device.
	Driver() string

	// ShaderFormats returns the formats this device consumes.
	ShaderFormats() ShaderFormat

	// AdapterInfo describes the physical adapter.
	AdapterInfo() gputypes.AdapterInfo

	// ClaimWindow binds w to the device and creates its swapchain.
	ClaimWindow(w NativeWindow) error

	// ReleaseWindow unbinds w and destroys its swapchain.
	ReleaseWindow(w NativeWindow)

	// SupportsPresentMode reports whether the claimed window can present
	// with mode.
	SupportsPresentMode(w NativeWindow, mode gputypes.PresentMode) bool

	// SetSwapchainParameters reconfigures the claimed window's swapchain.
	SetSwapchainParameters(w NativeWindow, composition SwapchainComposition, mode gputypes.PresentMode) error

	// SwapchainFormat returns the texture format of the window's swapchain.
	SwapchainFormat(w NativeWindow) gputypes.TextureFormat

	// CreateShaderModule loads a translated shader onto the device.
	CreateShaderModule(desc ShaderModuleDescriptor) (ShaderModule, error)

	// AcquireCommandBuffer returns a command buffer for this frame. It must
	// be submitted or cancelled.
	AcquireCommandBuffer() (CommandBuffer, error)

	// WaitIdle blocks until all submitted work has completed.
	WaitIdle() error

	// Destroy releases the device.
	Destroy()
}

// ShaderModuleDescriptor describes a shader to load onto a device.
type ShaderModuleDescriptor struct {
	Label string

	// Source is the WGSL the bytecode was translated from. Drivers that
	// translate internally load it instead of Code.
	Source string

	Format ShaderFormat
	Code   []byte

	// Stages holds per-entry-point programs for formats that need them.
	Stages map[string][]byte
}

// ShaderModule is a shader loaded onto a device.
type ShaderModule interface {
	Label() string
	Format() ShaderFormat

	// Release frees the module. Calling it twice is a no-op.
	Release()
}

// CommandBuffer records one frame of GPU work.
type CommandBuffer interface {
	// AcquireSwapchainTexture returns the next swapchain texture of a
	// claimed window. A nil texture with a nil error means there is nothing
	// to draw into this frame.
	AcquireSwapchainTexture(w NativeWindow) (Texture, error)

	// BeginRenderPass starts a render pass on the given color targets.
	BeginRenderPass(targets ...ColorTarget) (RenderPass, error)

	// Submit submits the recorded work and presents any acquired swapchain
	// texture.
	Submit() error

	// Cancel discards the recorded work.
	Cancel()
}

// Texture is a GPU texture, typically a swapchain image.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat
}

// ColorTarget is one color attachment of a render pass.
type ColorTarget struct {
	Texture    Texture
	ClearColor gputypes.Color
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
}

// RenderPass is an open render pass.
type RenderPass interface {
	// End closes the pass.
	End() error
}
