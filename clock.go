// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import "time"

// Default frame delta bounds. The upper bound keeps a debugger pause or a
// long hitch from arriving as one huge step.
const (
	MinDelta = time.Millisecond
	MaxDelta = 100 * time.Millisecond
)

// ClampDelta clamps d to [lo, hi].
func ClampDelta(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// frameClock turns a monotonic tick source into clamped per-frame deltas.
type frameClock struct {
	now      func() time.Duration
	prev     time.Duration
	min, max time.Duration
}

func newFrameClock(now func() time.Duration, lo, hi time.Duration) *frameClock {
	return &frameClock{now: now, prev: now(), min: lo, max: hi}
}

// Tick returns the clamped time since the previous Tick (or construction).
func (c *frameClock) Tick() time.Duration {
	t := c.now()
	d := t - c.prev
	c.prev = t
	return ClampDelta(d, c.min, c.max)
}
