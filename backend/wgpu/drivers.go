// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gputypes"
)

// DriverName returns the engine driver name of a HAL backend, or "" for
// backends the engine does not expose.
func DriverName(b gputypes.Backend) string {
	switch b {
	case gputypes.BackendVulkan:
		return gpucore.DriverVulkan
	case gputypes.BackendMetal:
		return gpucore.DriverMetal
	case gputypes.BackendDX12:
		return gpucore.DriverDirect3D12
	case gputypes.BackendGL:
		return gpucore.DriverOpenGL
	default:
		return ""
	}
}

// BackendsFor returns the instance backend mask for a driver name. The
// empty name selects every backend.
func BackendsFor(driver string) (gputypes.Backends, error) {
	switch driver {
	case "":
		return gputypes.BackendsAll, nil
	case gpucore.DriverVulkan:
		return gputypes.BackendsVulkan, nil
	case gpucore.DriverMetal:
		return gputypes.BackendsMetal, nil
	case gpucore.DriverDirect3D12:
		return gputypes.BackendsDX12, nil
	case gpucore.DriverOpenGL:
		return gputypes.BackendsGL, nil
	default:
		return gputypes.BackendsNone, fmt.Errorf("wgpu: unknown driver %q", driver)
	}
}

// driverNames maps HAL backends to driver names, dropping the ones the
// engine does not expose and keeping the input order.
func driverNames(backends []gputypes.Backend) []string {
	names := make([]string, 0, len(backends))
	for _, b := range backends {
		if name := DriverName(b); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// pickSurfaceFormat prefers the 8-bit BGRA format matching the requested
// color space, then RGBA, then whatever the surface lists first.
func pickSurfaceFormat(formats []gputypes.TextureFormat, srgb bool) gputypes.TextureFormat {
	prefs := []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm}
	if srgb {
		prefs = []gputypes.TextureFormat{gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureFormatRGBA8UnormSrgb}
	}
	for _, want := range prefs {
		for _, f := range formats {
			if f == want {
				return f
			}
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// pickAlphaMode prefers opaque composition.
func pickAlphaMode(modes []gputypes.CompositeAlphaMode) gputypes.CompositeAlphaMode {
	for _, m := range modes {
		if m == gputypes.CompositeAlphaModeOpaque {
			return m
		}
	}
	if len(modes) > 0 {
		return modes[0]
	}
	return gputypes.CompositeAlphaModeAuto
}
