// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader compiles WGSL into the bytecode formats GPU drivers consume.
//
// Shaders are authored once in WGSL and translated with naga at device
// creation time, so the renderer never depends on a particular driver's
// shading language.
package shader

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/dxil"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"
)

// FillWGSL is the built-in full-screen fill shader.
//
//go:embed shaders/fill.wgsl
var FillWGSL string

// ErrUnsupportedFormat is returned when asked for a format naga cannot
// produce.
var ErrUnsupportedFormat = errors.New("shader: unsupported format")

// Module is a parsed and validated WGSL module.
type Module struct {
	Label string
	ir    *ir.Module
}

// Parse parses, lowers and validates WGSL source.
func Parse(label, source string) (*Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", label, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: lower: %w", label, err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("shader %q: validate: %w", label, err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("shader %q: validate: %w", label, verrs[0])
	}
	return &Module{Label: label, ir: module}, nil
}

// EntryPoints returns the module's entry point names, sorted.
func (m *Module) EntryPoints() []string {
	names := make([]string, 0, len(m.ir.EntryPoints))
	for _, ep := range m.ir.EntryPoints {
		names = append(names, ep.Name)
	}
	sort.Strings(names)
	return names
}

// Bytecode is a module translated to one format.
type Bytecode struct {
	Format gpucore.ShaderFormat

	// Code holds the translation of the whole module. Empty for formats
	// that need one program per entry point.
	Code []byte

	// Stages holds per-entry-point programs, keyed by entry point name.
	// Only set for GLSL.
	Stages map[string][]byte
}

// Clone returns a deep copy of b.
func (b Bytecode) Clone() Bytecode {
	b.Code = bytes.Clone(b.Code)
	if b.Stages != nil {
		stages := make(map[string][]byte, len(b.Stages))
		for name, code := range b.Stages {
			stages[name] = bytes.Clone(code)
		}
		b.Stages = stages
	}
	return b
}

// Compile translates the module to a single format.
func (m *Module) Compile(format gpucore.ShaderFormat) (Bytecode, error) {
	out := Bytecode{Format: format}
	var err error
	switch format {
	case gpucore.ShaderFormatSPIRV:
		out.Code, err = naga.GenerateSPIRV(m.ir, spirv.Options{
			Version:           spirv.Version1_3,
			ForceLoopBounding: true,
		})
	case gpucore.ShaderFormatMSL:
		var src string
		src, _, err = msl.Compile(m.ir, msl.DefaultOptions())
		out.Code = []byte(src)
	case gpucore.ShaderFormatHLSL:
		var src string
		src, _, err = hlsl.Compile(m.ir, hlsl.DefaultOptions())
		out.Code = []byte(src)
	case gpucore.ShaderFormatDXIL:
		out.Code, err = dxil.Compile(m.ir, dxil.DefaultOptions())
	case gpucore.ShaderFormatGLSL:
		out.Stages = make(map[string][]byte, len(m.ir.EntryPoints))
		for _, ep := range m.ir.EntryPoints {
			opts := glsl.DefaultOptions()
			opts.EntryPoint = ep.Name
			src, _, cerr := glsl.Compile(m.ir, opts)
			if cerr != nil {
				err = fmt.Errorf("entry point %s: %w", ep.Name, cerr)
				break
			}
			out.Stages[ep.Name] = []byte(src)
		}
	default:
		return Bytecode{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Bytecode{}, fmt.Errorf("shader %q to %v: %w", m.Label, format, err)
	}
	return out, nil
}

// CompileAll translates the module to every format in formats.
func (m *Module) CompileAll(formats gpucore.ShaderFormat) (map[gpucore.ShaderFormat]Bytecode, error) {
	out := make(map[gpucore.ShaderFormat]Bytecode)
	for _, f := range formats.Formats() {
		if f == gpucore.ShaderFormatWGSL {
			continue
		}
		bc, err := m.Compile(f)
		if err != nil {
			return nil, err
		}
		out[f] = bc
	}
	return out, nil
}

// Compile parses source and translates it to format. WGSL is returned
// unchanged after validation.
func Compile(label, source string, format gpucore.ShaderFormat) (Bytecode, error) {
	m, err := Parse(label, source)
	if err != nil {
		return Bytecode{}, err
	}
	if format == gpucore.ShaderFormatWGSL {
		return Bytecode{Format: format, Code: []byte(source)}, nil
	}
	return m.Compile(format)
}
