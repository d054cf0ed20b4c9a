// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gpucontext"
)

// PreferredDrivers is the driver preference order. Drivers not listed are
// never forced; the platform default is used instead.
var PreferredDrivers = []string{
	gpucore.DriverVulkan,
	gpucore.DriverMetal,
	gpucore.DriverDirect3D12,
}

// SelectDriver picks the most preferred driver present in available,
// regardless of the order available lists them in. It returns "" when none
// of the preferred drivers is present, meaning the platform default.
func SelectDriver(available []string) string {
	reg := gpucontext.NewRegistry[string](gpucontext.WithPriority(PreferredDrivers...))
	for _, name := range available {
		reg.Register(name, func() string { return name })
	}
	for _, name := range PreferredDrivers {
		if reg.Has(name) {
			return name
		}
	}
	return ""
}
