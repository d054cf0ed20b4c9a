// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/wgpu"
)

// ErrShaderSource is returned when a shader module descriptor carries
// nothing wgpu can load.
var ErrShaderSource = errors.New("wgpu: shader needs SPIR-V code or WGSL source")

// shaderModule is a gpucore.ShaderModule on a wgpu shader module.
type shaderModule struct {
	label  string
	format gpucore.ShaderFormat
	module *wgpu.ShaderModule
}

func (m *shaderModule) Label() string                { return m.label }
func (m *shaderModule) Format() gpucore.ShaderFormat { return m.format }

func (m *shaderModule) Release() {
	if m.module != nil {
		m.module.Release()
		m.module = nil
	}
}

// CreateShaderModule loads SPIR-V code directly. Any other format is loaded
// from its WGSL source, which wgpu translates for the backend itself.
func (d *Device) CreateShaderModule(desc gpucore.ShaderModuleDescriptor) (gpucore.ShaderModule, error) {
	wdesc, err := moduleDescriptor(desc)
	if err != nil {
		return nil, err
	}
	module, err := d.device.CreateShaderModule(wdesc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: shader %q: %w", desc.Label, err)
	}
	format := desc.Format
	if wdesc.SPIRV == nil {
		format = gpucore.ShaderFormatWGSL
	}
	d.gpu.Logger().Debug("wgpu: shader module created", "label", desc.Label, "format", format.String())
	return &shaderModule{label: desc.Label, format: format, module: module}, nil
}

func moduleDescriptor(desc gpucore.ShaderModuleDescriptor) (*wgpu.ShaderModuleDescriptor, error) {
	if desc.Format == gpucore.ShaderFormatSPIRV && len(desc.Code) > 0 {
		words, err := spirvWords(desc.Code)
		if err != nil {
			return nil, fmt.Errorf("wgpu: shader %q: %w", desc.Label, err)
		}
		return &wgpu.ShaderModuleDescriptor{Label: desc.Label, SPIRV: words}, nil
	}
	if desc.Source == "" {
		return nil, fmt.Errorf("%w: %q has format %v", ErrShaderSource, desc.Label, desc.Format)
	}
	return &wgpu.ShaderModuleDescriptor{Label: desc.Label, WGSL: desc.Source}, nil
}

// spirvWords converts little-endian SPIR-V bytes to words and checks the
// magic number.
func spirvWords(code []byte) ([]uint32, error) {
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V length %d is not a multiple of 4", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		return nil, errors.New("missing SPIR-V magic number")
	}
	return words, nil
}
