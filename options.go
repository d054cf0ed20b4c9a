// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"log/slog"
	"time"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/render"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Option configures an Application.
//
// Example:
//
//	app := engine.New(spec,
//	    engine.WithPlatform(glfw.New(nil)),
//	    engine.WithClearColor(render.Red),
//	)
type Option func(*options)

type options struct {
	log        *slog.Logger
	platform   gpucore.Platform
	gpu        gpucore.GPU
	clearColor gputypes.Color
	driver     string
	clock      func() time.Duration
	quitKey    gpucontext.Key
	minDelta   time.Duration
	maxDelta   time.Duration
}

func defaultOptions() options {
	return options{
		clearColor: render.Black,
		quitKey:    gpucontext.KeyUnknown,
		minDelta:   MinDelta,
		maxDelta:   MaxDelta,
	}
}

// WithLogger sets the application logger. Without it the package logger
// from Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithPlatform sets the windowing platform. Required.
func WithPlatform(p gpucore.Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithGPU sets the GPU explicitly. Without it the highest-priority
// registered backend is used.
func WithGPU(g gpucore.GPU) Option {
	return func(o *options) { o.gpu = g }
}

// WithClearColor sets the color each frame is cleared to. Default black.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) { o.clearColor = c }
}

// WithDriver forces a driver by name, skipping the preference scan.
func WithDriver(name string) Option {
	return func(o *options) { o.driver = name }
}

// WithClock replaces the platform tick source used for frame deltas.
func WithClock(now func() time.Duration) Option {
	return func(o *options) { o.clock = now }
}

// WithQuitKey sets a key that ends the application when pressed. By
// default no key does, and KeyUnknown restores that.
func WithQuitKey(k gpucontext.Key) Option {
	return func(o *options) { o.quitKey = k }
}

// WithDeltaClamp sets the bounds frame deltas are clamped to. Bounds that
// are non-positive or inverted are ignored.
func WithDeltaClamp(lo, hi time.Duration) Option {
	return func(o *options) {
		if lo <= 0 || hi < lo {
			return
		}
		o.minDelta, o.maxDelta = lo, hi
	}
}
