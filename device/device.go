// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device owns the GPU device bound to the application window.
package device

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
	"github.com/gogpu/engine/shader"
	"github.com/gogpu/engine/window"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DefaultShaderFormats are requested from every device so the renderer can
// ship one shader set regardless of the driver chosen.
const DefaultShaderFormats = gpucore.ShaderFormatSPIRV | gpucore.ShaderFormatDXIL | gpucore.ShaderFormatMSL

// ErrNotCreated is returned by operations that need a created device.
var ErrNotCreated = errors.New("device: not created")

// Option configures a Device.
type Option func(*options)

type options struct {
	log     *slog.Logger
	driver  string
	formats gpucore.ShaderFormat
	debug   bool
}

func defaultOptions() options {
	return options{
		formats: DefaultShaderFormats,
		debug:   true,
	}
}

// WithLogger sets the logger. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithDriver forces a driver by name instead of the preference scan.
func WithDriver(name string) Option {
	return func(o *options) { o.driver = name }
}

// WithShaderFormats replaces the requested shader formats.
func WithShaderFormats(f gpucore.ShaderFormat) Option {
	return func(o *options) { o.formats = f }
}

// WithDebug toggles driver validation layers. Enabled by default.
func WithDebug(on bool) Option {
	return func(o *options) { o.debug = on }
}

// Device owns one GPU device bound 1:1 to a Window while it is claimed.
type Device struct {
	gpu  gpucore.GPU
	win  *window.Window
	opts options
	log  *slog.Logger

	dev         gpucore.Device
	claimed     gpucore.NativeWindow
	presentMode gputypes.PresentMode
	fill        shader.Bytecode
	fillModule  gpucore.ShaderModule
}

// New returns a Device that will be created on gpu and claim win.
func New(gpu gpucore.GPU, win *window.Window, opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{gpu: gpu, win: win, opts: o, log: logging.Or(o.log)}
}

// Create selects a driver, creates the device, claims the window and
// configures its swapchain. The window must already exist.
//
// Failure leaves the Device uncreated; there is no retry and no fallback
// device.
func (d *Device) Create() error {
	if d.dev != nil {
		return nil
	}
	if !d.win.Valid() {
		return fmt.Errorf("%w: window not created", gpucore.ErrClaimWindow)
	}

	drivers := d.gpu.Drivers()
	d.log.Info("device: supported drivers", "drivers", drivers)

	driver := d.opts.driver
	if driver == "" {
		driver = SelectDriver(drivers)
	}
	if driver == "" {
		d.log.Info("device: no preferred driver found, using platform default")
	} else {
		d.log.Info("device: preferred driver", "driver", driver)
	}

	dev, err := d.gpu.CreateDevice(gpucore.DeviceDescriptor{
		Formats: d.opts.formats,
		Debug:   d.opts.debug,
		Driver:  driver,
	})
	if err != nil {
		d.log.Error("device: create failed", "driver", driver, "error", err)
		return fmt.Errorf("%w: %w", gpucore.ErrDeviceCreate, err)
	}
	info := dev.AdapterInfo()
	d.log.Info("device: selected driver",
		"driver", dev.Driver(),
		"adapter", info.Name,
		"type", info.DeviceType.String())

	fill, err := compileFill(dev.ShaderFormats() & d.opts.formats)
	if err != nil {
		dev.Destroy()
		return fmt.Errorf("%w: %w", gpucore.ErrDeviceCreate, err)
	}
	module, err := loadShader(dev, "fill", shader.FillWGSL, fill)
	if err != nil {
		d.log.Error("device: load fill shader failed", "format", fill.Format.String(), "error", err)
		dev.Destroy()
		return fmt.Errorf("%w: %w", gpucore.ErrDeviceCreate, err)
	}

	native := d.win.Native()
	if err := dev.ClaimWindow(native); err != nil {
		d.log.Error("device: claim window failed", "error", err)
		releaseModule(module)
		dev.Destroy()
		return fmt.Errorf("%w: %w", gpucore.ErrClaimWindow, err)
	}

	mode := gputypes.PresentModeFifo
	if dev.SupportsPresentMode(native, gputypes.PresentModeMailbox) {
		mode = gputypes.PresentModeMailbox
	}
	if err := dev.SetSwapchainParameters(native, gpucore.SwapchainCompositionSDR, mode); err != nil {
		d.log.Error("device: swapchain parameters rejected", "mode", mode.String(), "error", err)
		releaseModule(module)
		dev.ReleaseWindow(native)
		dev.Destroy()
		return fmt.Errorf("%w: %w", gpucore.ErrClaimWindow, err)
	}
	d.log.Debug("device: swapchain configured",
		"present_mode", mode.String(),
		"format", dev.SwapchainFormat(native).String())

	d.dev = dev
	d.claimed = native
	d.presentMode = mode
	d.fill = fill
	d.fillModule = module
	return nil
}

// compileFill translates the built-in fill shader to the first format in
// formats. An empty set compiles nothing.
func compileFill(formats gpucore.ShaderFormat) (shader.Bytecode, error) {
	list := formats.Formats()
	if len(list) == 0 {
		return shader.Bytecode{}, nil
	}
	return shader.Cached("fill", shader.FillWGSL, list[0])
}

// loadShader hands compiled bytecode to dev. Empty bytecode loads nothing
// and returns a nil module.
func loadShader(dev gpucore.Device, label, source string, b shader.Bytecode) (gpucore.ShaderModule, error) {
	if len(b.Code) == 0 && len(b.Stages) == 0 {
		return nil, nil
	}
	return dev.CreateShaderModule(gpucore.ShaderModuleDescriptor{
		Label:  label,
		Source: source,
		Format: b.Format,
		Code:   b.Code,
		Stages: b.Stages,
	})
}

func releaseModule(m gpucore.ShaderModule) {
	if m != nil {
		m.Release()
	}
}

// Destroy waits for the GPU to go idle, releases the fill shader and the
// window from the device and destroys the device, in that order. It is safe to call on a device
// that was never created.
func (d *Device) Destroy() {
	if d.dev == nil {
		return
	}
	if err := d.dev.WaitIdle(); err != nil {
		d.log.Warn("device: wait idle failed", "error", err)
	}
	releaseModule(d.fillModule)
	d.fillModule = nil
	if d.claimed != nil {
		d.dev.ReleaseWindow(d.claimed)
		d.claimed = nil
	}
	d.dev.Destroy()
	d.dev = nil
	d.log.Debug("device: destroyed")
}

// Valid reports whether the device has been created.
func (d *Device) Valid() bool { return d.dev != nil }

// Handle returns the underlying device, or nil before Create.
func (d *Device) Handle() gpucore.Device { return d.dev }

// Window returns the window the device presents to.
func (d *Device) Window() *window.Window { return d.win }

// Driver returns the driver in use, or "" before Create.
func (d *Device) Driver() string {
	if d.dev == nil {
		return ""
	}
	return d.dev.Driver()
}

// PresentMode returns the negotiated present mode.
func (d *Device) PresentMode() gputypes.PresentMode { return d.presentMode }

// ShaderFormats returns the formats the device consumes.
func (d *Device) ShaderFormats() gpucore.ShaderFormat {
	if d.dev == nil {
		return gpucore.ShaderFormatNone
	}
	return d.dev.ShaderFormats()
}

// FillShader returns the built-in fill shader in the device's format.
func (d *Device) FillShader() shader.Bytecode { return d.fill }

// FillModule returns the fill shader as loaded on the device, or nil when
// the device consumes none of the requested formats.
func (d *Device) FillModule() gpucore.ShaderModule { return d.fillModule }

// SurfaceFormat returns the swapchain texture format.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	if d.dev == nil || d.claimed == nil {
		return gputypes.TextureFormatUndefined
	}
	return d.dev.SwapchainFormat(d.claimed)
}

// AdapterInfo describes the adapter for render mode decisions.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	if d.dev == nil {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	info := d.dev.AdapterInfo()
	return gpucontext.AdapterInfo{Name: info.Name, Type: adapterType(info.DeviceType)}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}
