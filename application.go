// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/engine/backend"
	"github.com/gogpu/engine/device"
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/render"
	"github.com/gogpu/engine/window"
	"github.com/gogpu/gpucontext"
)

// State is the lifecycle state of an Application.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateQuitting
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateRunning:
		return "Running"
	case StateQuitting:
		return "Quitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AppResult tells the frame loop whether to keep going.
type AppResult int

const (
	// Continue keeps the loop running.
	Continue AppResult = iota
	// Success ends the loop normally.
	Success
	// Failure ends the loop with an error.
	Failure
)

func (r AppResult) String() string {
	switch r {
	case Continue:
		return "Continue"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("AppResult(%d)", int(r))
	}
}

// Application owns one Window, one Device and the LayerStack, and drives
// them from a single-threaded frame loop.
//
// Lifecycle: Init (create window, create device, claim window, show
// window), then Iterate once per frame with OnEvent for each OS event,
// then Quit. Run does all of it.
type Application struct {
	spec ApplicationSpecification
	opts options
	log  *slog.Logger

	platform gpucore.Platform
	gpu      gpucore.GPU
	win      *window.Window
	dev      *device.Device
	layers   *LayerStack
	pass     *render.ClearPass
	clock    *frameClock
	ctx      *Context

	state         State
	initCalled    bool
	platformReady bool
	quitRequested bool
	frame         uint64
}

// New returns an uninitialized application. WithPlatform is required
// before Init.
func New(spec ApplicationSpecification, opts ...Option) *Application {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		log = Logger()
	}
	a := &Application{
		spec:     spec,
		opts:     o,
		log:      log,
		platform: o.platform,
		gpu:      o.gpu,
		layers:   NewLayerStack(),
		pass:     render.NewClearPass(o.clearColor),
	}
	a.ctx = &Context{app: a}
	return a
}

// Specification returns the specification the application was built with.
func (a *Application) Specification() ApplicationSpecification { return a.spec }

// State returns the lifecycle state.
func (a *Application) State() State { return a.state }

// Layers returns the layer stack.
func (a *Application) Layers() *LayerStack { return a.layers }

// Window returns the window, or nil before Init.
func (a *Application) Window() *window.Window { return a.win }

// Device returns the device, or nil before Init.
func (a *Application) Device() *device.Device { return a.dev }

// Context returns the handle passed to layers.
func (a *Application) Context() *Context { return a.ctx }

// Frame returns the number of frames rendered.
func (a *Application) Frame() uint64 { return a.frame }

// PushLayer pushes l onto the stack.
func (a *Application) PushLayer(l Layer) error {
	return a.layers.Push(l)
}

// Init creates the window and the device, claims the window for the
// device and shows it. On failure everything created so far is released
// and the application stays Uninitialized for good: Init may only be
// called once.
func (a *Application) Init() error {
	if a.initCalled {
		return ErrAlreadyRunning
	}
	a.initCalled = true
	if a.platform == nil {
		return a.initFailed(fmt.Errorf("%w: no platform configured", ErrPlatformInit))
	}
	if err := a.platform.Init(a.spec.metadata()); err != nil {
		return a.initFailed(fmt.Errorf("%w: %w", ErrPlatformInit, err))
	}
	a.platformReady = true

	if a.gpu == nil {
		g, err := a.pickGPU()
		if err != nil {
			return a.initFailed(fmt.Errorf("%w: %w", ErrDeviceCreate, err))
		}
		a.gpu = g
	}

	win := window.New(a.platform, a.spec.Window, a.log)
	if err := win.Create(); err != nil {
		return a.initFailed(err)
	}
	a.win = win

	dev := device.New(a.gpu, win, device.WithLogger(a.log), device.WithDriver(a.opts.driver))
	if err := dev.Create(); err != nil {
		return a.initFailed(err)
	}
	a.dev = dev

	win.Show()

	now := a.opts.clock
	if now == nil {
		now = a.platform.Ticks
	}
	a.clock = newFrameClock(now, a.opts.minDelta, a.opts.maxDelta)
	a.state = StateRunning
	activate(a.gpu)
	a.layers.bind(a.ctx)

	a.log.Info("engine: initialized",
		"app", a.spec.Name,
		"version", a.spec.Version,
		"driver", dev.Driver(),
		"present_mode", dev.PresentMode().String())
	return nil
}

// pickGPU returns the software backend when that driver is forced and the
// highest-priority registered backend otherwise.
func (a *Application) pickGPU() (gpucore.GPU, error) {
	if a.opts.driver == gpucore.DriverSoftware {
		return backend.Get(backend.BackendSoftware)
	}
	g, name, err := backend.Default()
	if err != nil {
		return nil, err
	}
	a.log.Debug("engine: using backend", "backend", name)
	return g, nil
}

func (a *Application) initFailed(err error) error {
	a.log.Error("engine: init failed", "error", err)
	a.teardown()
	return err
}

// OnEvent handles one OS event. Quit and a close request for the owned
// window end the application, as does the quit key when one is set.
// Anything else is offered to the layers.
func (a *Application) OnEvent(ev gpucore.Event) AppResult {
	if a.state != StateRunning {
		return Continue
	}
	switch {
	case ev.Type == gpucore.EventQuit:
		a.log.Debug("engine: quit requested")
		return Success
	case window.ShouldClose(ev.Type) && ev.WindowID == a.win.ID():
		a.log.Debug("engine: window close requested", "window", ev.WindowID)
		return Success
	case ev.Type == gpucore.EventKeyDown && !ev.Repeat &&
		a.opts.quitKey != gpucontext.KeyUnknown && ev.Key == a.opts.quitKey:
		a.log.Debug("engine: quit key pressed", "key", ev.Key)
		return Success
	}
	a.layers.dispatch(ev)
	return Continue
}

// Iterate runs one frame: update and render every layer, apply queued
// transitions, then clear and submit the swapchain image.
func (a *Application) Iterate() (AppResult, error) {
	if a.state != StateRunning {
		return Failure, ErrNotRunning
	}
	if a.quitRequested {
		return Success, nil
	}

	dt := a.clock.Tick()
	a.layers.update(dt)
	a.layers.render()
	if err := a.layers.ApplyPending(); err != nil {
		a.log.Warn("engine: layer transition dropped", "error", err)
	}

	drawn, err := a.pass.Execute(a.dev.Handle(), a.win.Native())
	if err != nil {
		a.log.Error("engine: frame failed", "frame", a.frame, "error", err)
		return Failure, err
	}
	a.win.Update()
	a.frame++
	if !drawn {
		a.log.Debug("engine: frame skipped", "frame", a.frame)
	}
	return Continue, nil
}

// Quit detaches the layers, waits for the GPU to go idle, releases the
// window from the device and destroys device, window and platform.
// Calling Quit more than once is a no-op.
func (a *Application) Quit() {
	if a.state == StateQuitting {
		return
	}
	if a.state == StateRunning {
		a.state = StateQuitting
		a.layers.unbind()
	}
	a.teardown()
	a.log.Info("engine: quit", "frames", a.frame)
}

// teardown releases whatever Init created, in reverse order.
func (a *Application) teardown() {
	if a.gpu != nil {
		deactivate(a.gpu)
	}
	if a.dev != nil {
		a.dev.Destroy()
		a.dev = nil
	}
	if a.win != nil {
		a.win.Destroy()
	}
	if a.platformReady {
		a.platform.Terminate()
		a.platformReady = false
	}
}

// Run initializes the application, runs the frame loop until an event or
// a frame ends it or ctx is cancelled, and quits. It returns nil on a
// normal exit.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	defer a.Quit()

	for {
		if ctx.Err() != nil {
			a.log.Debug("engine: context done", "reason", context.Cause(ctx))
			return nil
		}
		for {
			ev, ok := a.platform.PollEvent()
			if !ok {
				break
			}
			if a.OnEvent(ev) == Success {
				return nil
			}
		}
		res, err := a.Iterate()
		if err != nil {
			return err
		}
		if res == Success {
			return nil
		}
	}
}

// Context is the application handle passed to layers on attach.
type Context struct {
	app *Application
}

// Window returns the application window.
func (c *Context) Window() *window.Window { return c.app.win }

// Device returns the application device.
func (c *Context) Device() *device.Device { return c.app.dev }

// Layers returns the layer stack.
func (c *Context) Layers() *LayerStack { return c.app.layers }

// Logger returns the application logger.
func (c *Context) Logger() *slog.Logger { return c.app.log }

// Frame returns the number of frames rendered so far.
func (c *Context) Frame() uint64 { return c.app.frame }

// Transition queues the replacement of the layer keyed from by to. It is
// applied after the current frame's hooks have run.
func (c *Context) Transition(from LayerKey, to Layer) {
	c.app.layers.RequestTransition(from, to)
}

// Quit asks the application to stop; the next Iterate returns Success.
func (c *Context) Quit() { c.app.quitRequested = true }
