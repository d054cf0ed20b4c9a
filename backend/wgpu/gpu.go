// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/engine/backend"
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	// Register every HAL backend compiled for this platform.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func init() {
	backend.Register(backend.BackendWGPU, func() (gpucore.GPU, error) {
		g := New()
		if len(g.Drivers()) == 0 {
			return nil, wgpu.ErrNoBackends
		}
		return g, nil
	})
}

// GPU is a gpucore.GPU backed by gogpu/wgpu.
type GPU struct {
	log atomic.Pointer[slog.Logger]

	// availableBackends is swapped in tests.
	availableBackends func() []gputypes.Backend
}

// New returns a GPU over the HAL backends registered in this binary.
func New() *GPU {
	g := &GPU{availableBackends: hal.AvailableBackends}
	g.log.Store(logging.Nop())
	return g
}

// SetLogger sets the logger for this GPU, the devices it created and the
// wgpu stack beneath them. Nil disables logging.
func (g *GPU) SetLogger(l *slog.Logger) {
	g.log.Store(logging.Or(l))
	wgpu.SetLogger(l)
}

// Logger returns the GPU's logger.
func (g *GPU) Logger() *slog.Logger { return g.log.Load() }

// Drivers returns the engine driver names of the registered HAL backends.
func (g *GPU) Drivers() []string {
	return driverNames(g.availableBackends())
}

// CreateDevice creates an instance restricted to the requested driver,
// requests a high-performance adapter and opens a device on it.
func (g *GPU) CreateDevice(desc gpucore.DeviceDescriptor) (gpucore.Device, error) {
	mask, err := BackendsFor(desc.Driver)
	if err != nil {
		return nil, err
	}
	if desc.Driver != "" && !desc.Formats.Has(gpucore.NativeShaderFormat(desc.Driver)) {
		return nil, fmt.Errorf("%w: %s needs %v, have %v", gpucore.ErrUnsupportedShaderFormat,
			desc.Driver, gpucore.NativeShaderFormat(desc.Driver), desc.Formats)
	}

	var flags gputypes.InstanceFlags
	if desc.Debug {
		flags |= gputypes.InstanceFlagsDebug
	}
	instance, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: mask, Flags: flags})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("wgpu: request adapter: %w", err)
	}

	info := adapter.Info()
	driver := DriverName(info.Backend)
	if native := gpucore.NativeShaderFormat(driver); driver != "" && !desc.Formats.Has(native) {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: adapter %q uses %s", gpucore.ErrUnsupportedShaderFormat, info.Name, driver)
	}

	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "engine",
		RequiredLimits: wgpu.DefaultLimits(),
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("wgpu: request device: %w", err)
	}

	g.Logger().Info("wgpu: device created",
		"adapter", info.Name,
		"vendor", info.Vendor,
		"type", info.DeviceType.String(),
		"backend", info.Backend.String(),
		"debug", desc.Debug)

	return &Device{
		gpu:        g,
		instance:   instance,
		adapter:    adapter,
		device:     dev,
		info:       info,
		driver:     driver,
		formats:    gpucore.NativeShaderFormat(driver),
		swapchains: make(map[gpucore.WindowID]*swapchain),
	}, nil
}

var _ gpucore.GPU = (*GPU)(nil)
