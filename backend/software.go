package backend

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
	"github.com/gogpu/gputypes"
)

// SoftwareGPU is a CPU implementation of gpucore.GPU. Swapchain textures
// are *image.RGBA buffers in host memory; presenting hands the buffer to
// the window.
type SoftwareGPU struct {
	log atomic.Pointer[slog.Logger]
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() (gpucore.GPU, error) {
		return NewSoftwareGPU(), nil
	})
}

// NewSoftwareGPU creates a new software GPU.
func NewSoftwareGPU() *SoftwareGPU {
	g := &SoftwareGPU{}
	g.log.Store(logging.Nop())
	return g
}

// SetLogger sets the logger of the GPU and its devices. Nil disables
// logging.
func (g *SoftwareGPU) SetLogger(l *slog.Logger) { g.log.Store(logging.Or(l)) }

// Logger returns the GPU's logger.
func (g *SoftwareGPU) Logger() *slog.Logger { return g.log.Load() }

// Drivers returns the single software driver.
func (g *SoftwareGPU) Drivers() []string {
	return []string{gpucore.DriverSoftware}
}

// CreateDevice creates a software device. Forcing any driver other than
// software fails.
func (g *SoftwareGPU) CreateDevice(desc gpucore.DeviceDescriptor) (gpucore.Device, error) {
	if desc.Driver != "" && desc.Driver != gpucore.DriverSoftware {
		return nil, fmt.Errorf("%w: driver %q", ErrBackendNotAvailable, desc.Driver)
	}
	g.Logger().Debug("software: device created", "formats", desc.Formats.String())
	return &SoftwareDevice{
		gpu:        g,
		formats:    desc.Formats | gpucore.ShaderFormatWGSL,
		swapchains: make(map[gpucore.WindowID]*softwareSwapchain),
		modules:    make(map[*softwareShader]struct{}),
	}, nil
}

// ErrHDRUnsupported is returned for HDR swapchain compositions.
var ErrHDRUnsupported = errors.New("software: HDR swapchain compositions are not supported")

type softwareSwapchain struct {
	win   gpucore.NativeWindow
	img   *image.RGBA
	mode  gputypes.PresentMode
	srgb  bool
	frame uint64
}

// SoftwareDevice is the gpucore.Device of a SoftwareGPU.
type SoftwareDevice struct {
	gpu        *SoftwareGPU
	formats    gpucore.ShaderFormat
	swapchains map[gpucore.WindowID]*softwareSwapchain
	modules    map[*softwareShader]struct{}
	destroyed  bool
}

func (d *SoftwareDevice) Driver() string                      { return gpucore.DriverSoftware }
func (d *SoftwareDevice) ShaderFormats() gpucore.ShaderFormat { return d.formats }

func (d *SoftwareDevice) AdapterInfo() gputypes.AdapterInfo {
	return gputypes.AdapterInfo{
		Name:       "Software Renderer",
		Vendor:     "gogpu",
		DeviceType: gputypes.DeviceTypeCPU,
		Backend:    gputypes.BackendEmpty,
	}
}

func (d *SoftwareDevice) ClaimWindow(w gpucore.NativeWindow) error {
	if d.destroyed {
		return errors.New("software: device destroyed")
	}
	if _, ok := d.swapchains[w.ID()]; ok {
		return fmt.Errorf("software: window %d already claimed", w.ID())
	}
	d.swapchains[w.ID()] = &softwareSwapchain{win: w, mode: gputypes.PresentModeFifo}
	return nil
}

func (d *SoftwareDevice) ReleaseWindow(w gpucore.NativeWindow) {
	delete(d.swapchains, w.ID())
}

// SupportsPresentMode reports Fifo and Immediate. Presentation copies
// synchronously, so there is no queue for Mailbox to replace into.
func (d *SoftwareDevice) SupportsPresentMode(_ gpucore.NativeWindow, mode gputypes.PresentMode) bool {
	return mode == gputypes.PresentModeFifo || mode == gputypes.PresentModeImmediate
}

func (d *SoftwareDevice) SetSwapchainParameters(w gpucore.NativeWindow, c gpucore.SwapchainComposition, mode gputypes.PresentMode) error {
	sc, ok := d.swapchains[w.ID()]
	if !ok {
		return fmt.Errorf("software: window %d not claimed", w.ID())
	}
	if c != gpucore.SwapchainCompositionSDR && c != gpucore.SwapchainCompositionSDRLinear {
		return ErrHDRUnsupported
	}
	if !d.SupportsPresentMode(w, mode) {
		return fmt.Errorf("software: present mode %v not supported", mode)
	}
	sc.mode = mode
	sc.srgb = c == gpucore.SwapchainCompositionSDRLinear
	return nil
}

func (d *SoftwareDevice) SwapchainFormat(w gpucore.NativeWindow) gputypes.TextureFormat {
	if sc, ok := d.swapchains[w.ID()]; ok && sc.srgb {
		return gputypes.TextureFormatRGBA8UnormSrgb
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// ErrInvalidShader is returned for shader code the device cannot load.
var ErrInvalidShader = errors.New("software: invalid shader")

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// CreateShaderModule keeps a copy of the shader code. The CPU rasterizer
// only clears, so modules are held for their lifetime and never run.
func (d *SoftwareDevice) CreateShaderModule(desc gpucore.ShaderModuleDescriptor) (gpucore.ShaderModule, error) {
	if d.destroyed {
		return nil, errors.New("software: device destroyed")
	}
	if !d.formats.Has(desc.Format) || len(desc.Format.Formats()) != 1 {
		return nil, fmt.Errorf("%w: format %v", ErrInvalidShader, desc.Format)
	}
	switch {
	case desc.Format == gpucore.ShaderFormatWGSL:
		if desc.Source == "" {
			return nil, fmt.Errorf("%w: %q has no WGSL source", ErrInvalidShader, desc.Label)
		}
	case desc.Format == gpucore.ShaderFormatSPIRV:
		if len(desc.Code) < 20 || len(desc.Code)%4 != 0 || binary.LittleEndian.Uint32(desc.Code) != spirvMagic {
			return nil, fmt.Errorf("%w: %q is not a SPIR-V module", ErrInvalidShader, desc.Label)
		}
	case len(desc.Code) == 0 && len(desc.Stages) == 0:
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidShader, desc.Label)
	}
	m := &softwareShader{dev: d, label: desc.Label, format: desc.Format, code: bytes.Clone(desc.Code)}
	d.modules[m] = struct{}{}
	d.gpu.Logger().Debug("software: shader loaded", "label", desc.Label, "format", desc.Format.String(), "bytes", len(desc.Code))
	return m, nil
}

// ShaderModules returns how many shader modules are loaded.
func (d *SoftwareDevice) ShaderModules() int { return len(d.modules) }

func (d *SoftwareDevice) AcquireCommandBuffer() (gpucore.CommandBuffer, error) {
	if d.destroyed {
		return nil, errors.New("software: device destroyed")
	}
	return &softwareCommandBuffer{dev: d}, nil
}

// WaitIdle returns immediately: software work completes on submit.
func (d *SoftwareDevice) WaitIdle() error { return nil }

func (d *SoftwareDevice) Destroy() {
	d.swapchains = make(map[gpucore.WindowID]*softwareSwapchain)
	clear(d.modules)
	d.destroyed = true
}

// Frame returns the last image rendered for w, or nil.
func (d *SoftwareDevice) Frame(w gpucore.NativeWindow) *image.RGBA {
	if sc, ok := d.swapchains[w.ID()]; ok {
		return sc.img
	}
	return nil
}

// FrameCount returns how many frames were presented to w.
func (d *SoftwareDevice) FrameCount(w gpucore.NativeWindow) uint64 {
	if sc, ok := d.swapchains[w.ID()]; ok {
		return sc.frame
	}
	return 0
}

type softwareShader struct {
	dev    *SoftwareDevice
	label  string
	format gpucore.ShaderFormat
	code   []byte
}

func (m *softwareShader) Label() string                { return m.label }
func (m *softwareShader) Format() gpucore.ShaderFormat { return m.format }
func (m *softwareShader) Release()                     { delete(m.dev.modules, m) }

type softwareTexture struct {
	img    *image.RGBA
	format gputypes.TextureFormat
}

func (t *softwareTexture) Width() uint32                  { return uint32(t.img.Bounds().Dx()) }
func (t *softwareTexture) Height() uint32                 { return uint32(t.img.Bounds().Dy()) }
func (t *softwareTexture) Format() gputypes.TextureFormat { return t.format }

type softwareCommandBuffer struct {
	dev      *SoftwareDevice
	ops      []func()
	acquired []*softwareSwapchain
	done     bool
}

func (c *softwareCommandBuffer) AcquireSwapchainTexture(w gpucore.NativeWindow) (gpucore.Texture, error) {
	sc, ok := c.dev.swapchains[w.ID()]
	if !ok {
		return nil, fmt.Errorf("software: window %d not claimed", w.ID())
	}
	fw, fh := w.FramebufferSize()
	if fw <= 0 || fh <= 0 {
		return nil, nil
	}
	if sc.img == nil || sc.img.Bounds().Dx() != fw || sc.img.Bounds().Dy() != fh {
		sc.img = image.NewRGBA(image.Rect(0, 0, fw, fh))
	}
	c.acquired = append(c.acquired, sc)
	return &softwareTexture{img: sc.img, format: c.dev.SwapchainFormat(w)}, nil
}

func (c *softwareCommandBuffer) BeginRenderPass(targets ...gpucore.ColorTarget) (gpucore.RenderPass, error) {
	for _, t := range targets {
		tex, ok := t.Texture.(*softwareTexture)
		if !ok {
			return nil, fmt.Errorf("software: foreign texture %T", t.Texture)
		}
		if t.LoadOp != gputypes.LoadOpClear {
			continue
		}
		src := image.NewUniform(toRGBA(t.ClearColor))
		c.ops = append(c.ops, func() {
			draw.Draw(tex.img, tex.img.Bounds(), src, image.Point{}, draw.Src)
		})
	}
	return softwarePass{}, nil
}

func (c *softwareCommandBuffer) Submit() error {
	if c.done {
		return errors.New("software: command buffer already submitted")
	}
	c.done = true
	for _, op := range c.ops {
		op()
	}
	for _, sc := range c.acquired {
		sc.frame++
		sc.win.Present()
	}
	return nil
}

func (c *softwareCommandBuffer) Cancel() {
	c.done = true
	c.ops = nil
	c.acquired = nil
}

type softwarePass struct{}

func (softwarePass) End() error { return nil }

// toRGBA converts a [0, 1] float color to 8-bit RGBA, clamping out of
// range components.
func toRGBA(c gputypes.Color) color.RGBA {
	return color.RGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

var _ gpucore.Device = (*SoftwareDevice)(nil)
