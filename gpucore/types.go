// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "strings"

// Driver names understood by GPU implementations. An empty driver name
// means "let the platform choose".
const (
	DriverVulkan     = "vulkan"
	DriverMetal      = "metal"
	DriverDirect3D12 = "direct3d12"
	DriverOpenGL     = "opengl"
	DriverSoftware   = "software"
)

// ShaderFormat is a bitmask of shader bytecode formats a device accepts.
type ShaderFormat uint32

// Shader formats.
const (
	// ShaderFormatSPIRV is SPIR-V binary, consumed by Vulkan.
	ShaderFormatSPIRV ShaderFormat = 1 << iota

	// ShaderFormatDXIL is DXIL bytecode, consumed by Direct3D 12.
	ShaderFormatDXIL

	// ShaderFormatMSL is Metal Shading Language source.
	ShaderFormatMSL

	// ShaderFormatHLSL is HLSL source.
	ShaderFormatHLSL

	// ShaderFormatGLSL is GLSL source, consumed by OpenGL.
	ShaderFormatGLSL

	// ShaderFormatWGSL is WGSL source, consumed by software rasterizers.
	ShaderFormatWGSL
)

// ShaderFormatNone is the empty format set.
const ShaderFormatNone ShaderFormat = 0

var shaderFormatNames = []struct {
	f    ShaderFormat
	name string
}{
	{ShaderFormatSPIRV, "SPIRV"},
	{ShaderFormatDXIL, "DXIL"},
	{ShaderFormatMSL, "MSL"},
	{ShaderFormatHLSL, "HLSL"},
	{ShaderFormatGLSL, "GLSL"},
	{ShaderFormatWGSL, "WGSL"},
}

// Has reports whether every format in o is also in f.
func (f ShaderFormat) Has(o ShaderFormat) bool {
	return o != 0 && f&o == o
}

// Formats returns the individual formats set in f, lowest bit first.
func (f ShaderFormat) Formats() []ShaderFormat {
	var out []ShaderFormat
	for _, e := range shaderFormatNames {
		if f&e.f != 0 {
			out = append(out, e.f)
		}
	}
	return out
}

// String returns the format names joined by "|".
func (f ShaderFormat) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for _, e := range shaderFormatNames {
		if f&e.f != 0 {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}

// NativeShaderFormat returns the bytecode format a driver consumes, or
// ShaderFormatNone for unknown drivers.
func NativeShaderFormat(driver string) ShaderFormat {
	switch driver {
	case DriverVulkan:
		return ShaderFormatSPIRV
	case DriverMetal:
		return ShaderFormatMSL
	case DriverDirect3D12:
		return ShaderFormatDXIL
	case DriverOpenGL:
		return ShaderFormatGLSL
	case DriverSoftware:
		return ShaderFormatWGSL
	default:
		return ShaderFormatNone
	}
}

// WindowFlags is a bitmask of window creation flags.
type WindowFlags uint32

// Window flags.
const (
	// WindowResizable lets the user resize the window.
	WindowResizable WindowFlags = 1 << iota

	// WindowHidden creates the window invisible; call Show to map it.
	WindowHidden

	// WindowBorderless removes decorations.
	WindowBorderless

	// WindowAlwaysOnTop keeps the window above others.
	WindowAlwaysOnTop

	// WindowMaximized creates the window maximized.
	WindowMaximized

	// WindowHighPixelDensity requests a full-resolution framebuffer on
	// high-DPI displays.
	WindowHighPixelDensity
)

// Has reports whether every flag in o is set in f.
func (f WindowFlags) Has(o WindowFlags) bool {
	return f&o == o
}

// SwapchainComposition selects how swapchain images are composited.
type SwapchainComposition uint8

// Swapchain compositions.
const (
	// SwapchainCompositionSDR is 8-bit non-linear sRGB. Always supported.
	SwapchainCompositionSDR SwapchainComposition = iota

	// SwapchainCompositionSDRLinear is 8-bit with an sRGB view format.
	SwapchainCompositionSDRLinear

	// SwapchainCompositionHDRExtendedLinear is 16-bit float extended linear.
	SwapchainCompositionHDRExtendedLinear

	// SwapchainCompositionHDR10 is 10-bit ST.2084.
	SwapchainCompositionHDR10
)

// String returns the composition name.
func (c SwapchainComposition) String() string {
	switch c {
	case SwapchainCompositionSDR:
		return "SDR"
	case SwapchainCompositionSDRLinear:
		return "SDRLinear"
	case SwapchainCompositionHDRExtendedLinear:
		return "HDRExtendedLinear"
	case SwapchainCompositionHDR10:
		return "HDR10"
	default:
		return "Unknown"
	}
}

// AppMetadata describes the application to the platform layer.
type AppMetadata struct {
	Name       string
	Version    string
	Identifier string
}
