// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/engine/gpucore"
)

var spirvHeader = []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x03, 0x01, 0x00}

func TestModuleDescriptorSPIRV(t *testing.T) {
	desc, err := moduleDescriptor(gpucore.ShaderModuleDescriptor{
		Label:  "fill",
		Source: "@vertex fn vs_main() {}",
		Format: gpucore.ShaderFormatSPIRV,
		Code:   spirvHeader,
	})
	if err != nil {
		t.Fatalf("moduleDescriptor() error = %v", err)
	}
	if desc.WGSL != "" {
		t.Errorf("WGSL = %q, want empty for SPIR-V", desc.WGSL)
	}
	if len(desc.SPIRV) != 2 || desc.SPIRV[0] != 0x07230203 || desc.SPIRV[1] != 0x00010300 {
		t.Errorf("SPIRV = %#x, want [0x7230203 0x10300]", desc.SPIRV)
	}
}

func TestModuleDescriptorFallsBackToWGSL(t *testing.T) {
	src := "@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }"
	for _, f := range []gpucore.ShaderFormat{gpucore.ShaderFormatMSL, gpucore.ShaderFormatDXIL} {
		desc, err := moduleDescriptor(gpucore.ShaderModuleDescriptor{
			Label:  "fill",
			Source: src,
			Format: f,
			Code:   []byte("translated"),
		})
		if err != nil {
			t.Fatalf("moduleDescriptor(%v) error = %v", f, err)
		}
		if desc.WGSL != src || desc.SPIRV != nil {
			t.Errorf("moduleDescriptor(%v) = %+v, want WGSL source only", f, desc)
		}
	}
}

func TestModuleDescriptorErrors(t *testing.T) {
	tests := []struct {
		name string
		desc gpucore.ShaderModuleDescriptor
	}{
		{"no source", gpucore.ShaderModuleDescriptor{Label: "x", Format: gpucore.ShaderFormatMSL, Code: []byte("src")}},
		{"ragged spirv", gpucore.ShaderModuleDescriptor{Label: "x", Format: gpucore.ShaderFormatSPIRV, Code: []byte{1, 2, 3}}},
		{"bad magic", gpucore.ShaderModuleDescriptor{Label: "x", Format: gpucore.ShaderFormatSPIRV, Code: []byte{1, 2, 3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := moduleDescriptor(tt.desc); err == nil {
				t.Error("moduleDescriptor() error = nil, want error")
			}
		})
	}
	_, err := moduleDescriptor(tests[0].desc)
	if !errors.Is(err, ErrShaderSource) {
		t.Errorf("error = %v, want ErrShaderSource", err)
	}
}
