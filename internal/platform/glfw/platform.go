// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfw

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
)

// Platform is a gpucore.Platform on GLFW.
type Platform struct {
	log     *slog.Logger
	meta    gpucore.AppMetadata
	windows map[*glfw.Window]*Window
	nextID  gpucore.WindowID
	queue   []gpucore.Event
	start   float64
	ready   bool
}

// New returns an uninitialized platform. A nil logger disables logging.
func New(log *slog.Logger) *Platform {
	return &Platform{
		log:     logging.Or(log),
		windows: make(map[*glfw.Window]*Window),
	}
}

// Init initializes GLFW.
func (p *Platform) Init(meta gpucore.AppMetadata) error {
	if p.ready {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	p.ready = true
	p.meta = meta
	p.start = glfw.GetTime()
	p.log.Info("glfw: initialized",
		"app", meta.Name,
		"version", meta.Version,
		"identifier", meta.Identifier,
		"glfw", glfw.GetVersionString())
	return nil
}

// CreateWindow creates a window with no client API.
func (p *Platform) CreateWindow(desc gpucore.WindowDescriptor) (gpucore.NativeWindow, error) {
	if !p.ready {
		return nil, fmt.Errorf("glfw: CreateWindow before Init")
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, hint(desc.Flags.Has(gpucore.WindowResizable)))
	glfw.WindowHint(glfw.Visible, hint(!desc.Flags.Has(gpucore.WindowHidden)))
	glfw.WindowHint(glfw.Decorated, hint(!desc.Flags.Has(gpucore.WindowBorderless)))
	glfw.WindowHint(glfw.Floating, hint(desc.Flags.Has(gpucore.WindowAlwaysOnTop)))
	glfw.WindowHint(glfw.Maximized, hint(desc.Flags.Has(gpucore.WindowMaximized)))
	glfw.WindowHint(glfw.ScaleToMonitor, hint(desc.Flags.Has(gpucore.WindowHighPixelDensity)))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, hint(desc.Flags.Has(gpucore.WindowHighPixelDensity)))

	gw, err := glfw.CreateWindow(int(desc.Width), int(desc.Height), desc.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}

	p.nextID++
	w := &Window{platform: p, win: gw, id: p.nextID}
	handle, err := nativeHandle(gw)
	if err != nil {
		gw.Destroy()
		return nil, err
	}
	w.handle = handle
	p.windows[gw] = w
	p.install(w)

	p.log.Debug("glfw: window created", "id", w.id, "title", desc.Title,
		"width", desc.Width, "height", desc.Height)
	return w, nil
}

// PollEvent returns the next queued event, pumping GLFW when the queue is
// empty.
func (p *Platform) PollEvent() (gpucore.Event, bool) {
	if len(p.queue) == 0 && p.ready {
		glfw.PollEvents()
	}
	if len(p.queue) == 0 {
		return gpucore.Event{}, false
	}
	ev := p.queue[0]
	p.queue = p.queue[1:]
	return ev, true
}

// Ticks returns the time since Init.
func (p *Platform) Ticks() time.Duration {
	if !p.ready {
		return 0
	}
	return time.Duration((glfw.GetTime() - p.start) * float64(time.Second))
}

// Terminate destroys all windows and shuts GLFW down.
func (p *Platform) Terminate() {
	if !p.ready {
		return
	}
	for _, w := range p.windows {
		w.Destroy()
	}
	glfw.Terminate()
	p.ready = false
	p.queue = nil
	p.log.Debug("glfw: terminated")
}

func (p *Platform) push(ev gpucore.Event) {
	p.queue = append(p.queue, ev)
}

// install routes the window's GLFW callbacks into the event queue. A close
// request for the last open window is followed by EventQuit.
func (p *Platform) install(w *Window) {
	gw := w.win
	gw.SetCloseCallback(func(*glfw.Window) {
		gw.SetShouldClose(false)
		p.push(gpucore.Event{Type: gpucore.EventWindowCloseRequested, WindowID: w.id})
		if len(p.windows) == 1 {
			p.push(gpucore.Event{Type: gpucore.EventQuit})
		}
	})
	gw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		ev := gpucore.Event{
			Type:     gpucore.EventKeyDown,
			WindowID: w.id,
			Key:      mapKey(key),
			Mods:     mapMods(mods),
			Repeat:   action == glfw.Repeat,
		}
		if action == glfw.Release {
			ev.Type = gpucore.EventKeyUp
		}
		p.push(ev)
	})
	gw.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		ev := gpucore.Event{
			Type:     gpucore.EventMouseButtonDown,
			WindowID: w.id,
			Button:   mapButton(b),
			Mods:     mapMods(mods),
			X:        x,
			Y:        y,
		}
		if action == glfw.Release {
			ev.Type = gpucore.EventMouseButtonUp
		}
		p.push(ev)
	})
	gw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		p.push(gpucore.Event{Type: gpucore.EventMouseMotion, WindowID: w.id, X: x, Y: y})
	})
	gw.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		p.push(gpucore.Event{Type: gpucore.EventMouseWheel, WindowID: w.id, X: dx, Y: dy})
	})
	gw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		p.push(gpucore.Event{Type: gpucore.EventWindowResized, WindowID: w.id, Width: width, Height: height})
	})
	gw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		t := gpucore.EventWindowFocusLost
		if focused {
			t = gpucore.EventWindowFocusGained
		}
		p.push(gpucore.Event{Type: t, WindowID: w.id})
	})
}

func (p *Platform) forget(w *Window) {
	delete(p.windows, w.win)
}

func hint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

var _ gpucore.Platform = (*Platform)(nil)
