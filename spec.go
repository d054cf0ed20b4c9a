// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/window"
)

// ApplicationSpecification configures an Application.
type ApplicationSpecification struct {
	Name       string
	Version    string
	Identifier string
	Window     window.Specification
}

// DefaultApplicationSpecification returns the engine defaults with the
// default window.
func DefaultApplicationSpecification() ApplicationSpecification {
	return ApplicationSpecification{
		Name:       "BrianEngine SDL",
		Version:    "1.0.0",
		Identifier: "com.brainengine.brainengine-sdl",
		Window:     window.DefaultSpecification(),
	}
}

func (s ApplicationSpecification) metadata() gpucore.AppMetadata {
	return gpucore.AppMetadata{Name: s.Name, Version: s.Version, Identifier: s.Identifier}
}
