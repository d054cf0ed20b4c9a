// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fake provides in-memory gpucore implementations that record every
// call. Tests drive the engine through them without a display or a GPU.
package fake

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gputypes"
)

// Log is an ordered record of calls shared between fakes.
type Log struct {
	mu    sync.Mutex
	calls []string
}

func (l *Log) add(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (l *Log) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// Reset clears the log.
func (l *Log) Reset() {
	l.mu.Lock()
	l.calls = nil
	l.mu.Unlock()
}

// Platform is a recording gpucore.Platform.
type Platform struct {
	Log *Log

	InitErr   error
	CreateErr error

	// Events are returned by PollEvent in order.
	Events []gpucore.Event

	// Step is added to the clock on every Ticks call.
	Step time.Duration

	Meta    gpucore.AppMetadata
	Windows []*Window

	now    time.Duration
	nextID gpucore.WindowID
}

// NewPlatform returns a Platform recording into log.
func NewPlatform(log *Log) *Platform {
	return &Platform{Log: log, Step: 16 * time.Millisecond}
}

func (p *Platform) Init(meta gpucore.AppMetadata) error {
	p.Log.add("platform.Init(%s)", meta.Name)
	if p.InitErr != nil {
		return p.InitErr
	}
	p.Meta = meta
	return nil
}

func (p *Platform) CreateWindow(desc gpucore.WindowDescriptor) (gpucore.NativeWindow, error) {
	p.Log.add("platform.CreateWindow(%s)", desc.Title)
	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	p.nextID++
	w := &Window{
		Log:     p.Log,
		Desc:    desc,
		WinID:   p.nextID,
		Visible: !desc.Flags.Has(gpucore.WindowHidden),
		Scale:   1,
	}
	p.Windows = append(p.Windows, w)
	return w, nil
}

// Push queues events for PollEvent.
func (p *Platform) Push(events ...gpucore.Event) {
	p.Events = append(p.Events, events...)
}

func (p *Platform) PollEvent() (gpucore.Event, bool) {
	if len(p.Events) == 0 {
		return gpucore.Event{}, false
	}
	ev := p.Events[0]
	p.Events = p.Events[1:]
	return ev, true
}

func (p *Platform) Ticks() time.Duration {
	p.now += p.Step
	return p.now
}

func (p *Platform) Terminate() {
	p.Log.add("platform.Terminate")
}

// Window is a recording gpucore.NativeWindow.
type Window struct {
	Log  *Log
	Desc gpucore.WindowDescriptor

	WinID     gpucore.WindowID
	Visible   bool
	Destroyed bool
	Presents  int

	CursorX, CursorY float64
	Scale            float64
}

func (w *Window) ID() gpucore.WindowID { return w.WinID }

func (w *Window) Show() {
	w.Log.add("window.Show")
	w.Visible = true
}

func (w *Window) Present() { w.Presents++ }

func (w *Window) Size() (int, int) { return int(w.Desc.Width), int(w.Desc.Height) }

func (w *Window) FramebufferSize() (int, int) {
	return int(float64(w.Desc.Width) * w.Scale), int(float64(w.Desc.Height) * w.Scale)
}

func (w *Window) CursorPos() (float64, float64) { return w.CursorX, w.CursorY }

func (w *Window) ContentScale() float64 { return w.Scale }

func (w *Window) Handle() gpucore.NativeHandle {
	return gpucore.NativeHandle{Window: uintptr(w.WinID)}
}

func (w *Window) Destroy() {
	if w.Destroyed {
		return
	}
	w.Log.add("window.Destroy")
	w.Destroyed = true
}

// GPU is a recording gpucore.GPU.
type GPU struct {
	Log *Log

	// Available is returned by Drivers.
	Available []string

	CreateErr error

	// Dev is configured and returned by CreateDevice. A fresh Device is
	// created when nil.
	Dev *Device

	// Requested is the last descriptor passed to CreateDevice.
	Requested gpucore.DeviceDescriptor

	// Logger is the last logger passed to SetLogger.
	Logger *slog.Logger
}

// NewGPU returns a GPU recording into log and reporting drivers.
func NewGPU(log *Log, drivers ...string) *GPU {
	return &GPU{Log: log, Available: drivers}
}

func (g *GPU) SetLogger(l *slog.Logger) { g.Logger = l }

func (g *GPU) Drivers() []string { return append([]string(nil), g.Available...) }

func (g *GPU) CreateDevice(desc gpucore.DeviceDescriptor) (gpucore.Device, error) {
	g.Log.add("gpu.CreateDevice(%q)", desc.Driver)
	g.Requested = desc
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}
	if g.Dev == nil {
		g.Dev = NewDevice(g.Log)
	}
	driver := desc.Driver
	if driver == "" {
		driver = gpucore.DriverSoftware
		if len(g.Available) > 0 {
			driver = g.Available[0]
		}
	}
	g.Dev.DriverName = driver
	return g.Dev, nil
}

// ErrFake is a generic failure for tests to inject.
var ErrFake = errors.New("fake: injected failure")

// Device is a recording gpucore.Device.
type Device struct {
	Log *Log

	DriverName string
	Formats    gpucore.ShaderFormat
	Info       gputypes.AdapterInfo

	// PresentModes lists the modes SupportsPresentMode accepts.
	PresentModes []gputypes.PresentMode

	ClaimErr   error
	AcquireErr error
	TextureErr error
	SubmitErr  error
	PassErr    error
	ShaderErr  error

	// NoTexture makes AcquireSwapchainTexture report nothing to draw.
	NoTexture bool

	Claimed     gpucore.NativeWindow
	Composition gpucore.SwapchainComposition
	PresentMode gputypes.PresentMode
	Destroyed   bool

	// Modules records every shader module created on the device.
	Modules []*ShaderModule

	// Submitted counts successful submits; Cleared records clear colors.
	Submitted int
	Cleared   []gputypes.Color
}

// NewDevice returns a Device supporting Fifo only.
func NewDevice(log *Log) *Device {
	return &Device{
		Log:          log,
		Formats:      gpucore.ShaderFormatSPIRV,
		Info:         gputypes.AdapterInfo{Name: "Fake Adapter", DeviceType: gputypes.DeviceTypeCPU},
		PresentModes: []gputypes.PresentMode{gputypes.PresentModeFifo},
	}
}

func (d *Device) Driver() string                      { return d.DriverName }
func (d *Device) ShaderFormats() gpucore.ShaderFormat { return d.Formats }
func (d *Device) AdapterInfo() gputypes.AdapterInfo   { return d.Info }
func (d *Device) SwapchainFormat(gpucore.NativeWindow) gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (d *Device) ClaimWindow(w gpucore.NativeWindow) error {
	d.Log.add("device.ClaimWindow")
	if d.ClaimErr != nil {
		return d.ClaimErr
	}
	d.Claimed = w
	return nil
}

func (d *Device) ReleaseWindow(gpucore.NativeWindow) {
	d.Log.add("device.ReleaseWindow")
	d.Claimed = nil
}

func (d *Device) SupportsPresentMode(_ gpucore.NativeWindow, mode gputypes.PresentMode) bool {
	for _, m := range d.PresentModes {
		if m == mode {
			return true
		}
	}
	return false
}

func (d *Device) SetSwapchainParameters(_ gpucore.NativeWindow, c gpucore.SwapchainComposition, mode gputypes.PresentMode) error {
	d.Log.add("device.SetSwapchainParameters(%s)", c)
	d.Composition = c
	d.PresentMode = mode
	return nil
}

func (d *Device) CreateShaderModule(desc gpucore.ShaderModuleDescriptor) (gpucore.ShaderModule, error) {
	d.Log.add("device.CreateShaderModule(%s)", desc.Label)
	if d.ShaderErr != nil {
		return nil, d.ShaderErr
	}
	m := &ShaderModule{Log: d.Log, Desc: desc}
	d.Modules = append(d.Modules, m)
	return m, nil
}

func (d *Device) AcquireCommandBuffer() (gpucore.CommandBuffer, error) {
	if d.AcquireErr != nil {
		return nil, d.AcquireErr
	}
	return &CommandBuffer{dev: d}, nil
}

func (d *Device) WaitIdle() error {
	d.Log.add("device.WaitIdle")
	return nil
}

func (d *Device) Destroy() {
	d.Log.add("device.Destroy")
	d.Destroyed = true
}

// ShaderModule is a recording gpucore.ShaderModule.
type ShaderModule struct {
	Log      *Log
	Desc     gpucore.ShaderModuleDescriptor
	Released bool
}

func (m *ShaderModule) Label() string                { return m.Desc.Label }
func (m *ShaderModule) Format() gpucore.ShaderFormat { return m.Desc.Format }

func (m *ShaderModule) Release() {
	if m.Released {
		return
	}
	m.Log.add("shader.Release(%s)", m.Desc.Label)
	m.Released = true
}

// CommandBuffer is a recording gpucore.CommandBuffer.
type CommandBuffer struct {
	dev     *Device
	pending []gputypes.Color
	done    bool
}

func (c *CommandBuffer) AcquireSwapchainTexture(w gpucore.NativeWindow) (gpucore.Texture, error) {
	if c.dev.TextureErr != nil {
		return nil, c.dev.TextureErr
	}
	if c.dev.NoTexture {
		return nil, nil
	}
	fw, fh := w.FramebufferSize()
	return &Texture{W: uint32(fw), H: uint32(fh)}, nil
}

func (c *CommandBuffer) BeginRenderPass(targets ...gpucore.ColorTarget) (gpucore.RenderPass, error) {
	if c.dev.PassErr != nil {
		return nil, c.dev.PassErr
	}
	for _, t := range targets {
		if t.LoadOp == gputypes.LoadOpClear {
			c.pending = append(c.pending, t.ClearColor)
		}
	}
	return renderPass{}, nil
}

func (c *CommandBuffer) Submit() error {
	if c.done {
		return errors.New("fake: command buffer already finished")
	}
	c.done = true
	if c.dev.SubmitErr != nil {
		return c.dev.SubmitErr
	}
	c.dev.Submitted++
	c.dev.Cleared = append(c.dev.Cleared, c.pending...)
	return nil
}

func (c *CommandBuffer) Cancel() {
	c.done = true
	c.dev.Log.add("commandbuffer.Cancel")
}

type renderPass struct{}

func (renderPass) End() error { return nil }

// Texture is an in-memory gpucore.Texture.
type Texture struct {
	W, H uint32
}

func (t *Texture) Width() uint32                  { return t.W }
func (t *Texture) Height() uint32                 { return t.H }
func (t *Texture) Format() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

var (
	_ gpucore.Platform      = (*Platform)(nil)
	_ gpucore.NativeWindow  = (*Window)(nil)
	_ gpucore.GPU           = (*GPU)(nil)
	_ gpucore.Device        = (*Device)(nil)
	_ gpucore.ShaderModule  = (*ShaderModule)(nil)
	_ gpucore.CommandBuffer = (*CommandBuffer)(nil)
	_ gpucore.Texture       = (*Texture)(nil)
)
