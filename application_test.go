package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/fake"
	"github.com/gogpu/engine/render"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type harness struct {
	log      *fake.Log
	platform *fake.Platform
	gpu      *fake.GPU
	app      *Application
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	log := &fake.Log{}
	h := &harness{
		log:      log,
		platform: fake.NewPlatform(log),
		gpu:      fake.NewGPU(log, "metal", "vulkan"),
	}
	h.gpu.Dev = fake.NewDevice(log)
	// No shader formats in common: skip the shader compile in these tests.
	h.gpu.Dev.Formats = gpucore.ShaderFormatNone

	spec := DefaultApplicationSpecification()
	spec.Name = "Test"
	spec.Window.Title = "Test Window"
	all := append([]Option{WithPlatform(h.platform), WithGPU(h.gpu)}, opts...)
	h.app = New(spec, all...)
	return h
}

func (h *harness) init(t *testing.T) {
	t.Helper()
	if err := h.app.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	h.log.Reset()
}

func TestInitOrder(t *testing.T) {
	h := newHarness(t)
	if err := h.app.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	want := []string{
		"platform.Init(Test)",
		"platform.CreateWindow(Test Window)",
		`gpu.CreateDevice("vulkan")`,
		"device.ClaimWindow",
		"device.SetSwapchainParameters(SDR)",
		"window.Show",
	}
	if got := h.log.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v\nwant %v", got, want)
	}
	if h.app.State() != StateRunning {
		t.Errorf("State() = %v, want Running", h.app.State())
	}
	if !h.platform.Windows[0].Visible {
		t.Error("window not shown")
	}
	if h.platform.Meta.Identifier != "com.brainengine.brainengine-sdl" {
		t.Errorf("identifier = %q", h.platform.Meta.Identifier)
	}
}

func TestInitTwice(t *testing.T) {
	h := newHarness(t)
	h.init(t)
	if err := h.app.Init(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Init() = %v, want ErrAlreadyRunning", err)
	}
}

func TestInitFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		want  error
		calls []string
	}{
		{
			name:  "platform",
			setup: func(h *harness) { h.platform.InitErr = fake.ErrFake },
			want:  ErrPlatformInit,
			calls: []string{"platform.Init(Test)"},
		},
		{
			name:  "window",
			setup: func(h *harness) { h.platform.CreateErr = fake.ErrFake },
			want:  ErrWindowCreate,
			calls: []string{"platform.Init(Test)", "platform.CreateWindow(Test Window)", "platform.Terminate"},
		},
		{
			name:  "device",
			setup: func(h *harness) { h.gpu.CreateErr = fake.ErrFake },
			want:  ErrDeviceCreate,
			calls: []string{
				"platform.Init(Test)", "platform.CreateWindow(Test Window)",
				`gpu.CreateDevice("vulkan")`, "window.Destroy", "platform.Terminate",
			},
		},
		{
			name:  "claim",
			setup: func(h *harness) { h.gpu.Dev.ClaimErr = fake.ErrFake },
			want:  ErrClaimWindow,
			calls: []string{
				"platform.Init(Test)", "platform.CreateWindow(Test Window)",
				`gpu.CreateDevice("vulkan")`, "device.ClaimWindow", "device.Destroy",
				"window.Destroy", "platform.Terminate",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h)

			err := h.app.Init()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Init() = %v, want %v", err, tt.want)
			}
			if !IsInitFailure(err) {
				t.Error("IsInitFailure = false")
			}
			if !errors.Is(err, fake.ErrFake) {
				t.Error("native error not wrapped")
			}
			if got := h.log.Calls(); !reflect.DeepEqual(got, tt.calls) {
				t.Errorf("calls = %v\nwant %v", got, tt.calls)
			}
			if h.app.State() != StateUninitialized {
				t.Errorf("State() = %v, want Uninitialized", h.app.State())
			}
			if _, err := h.app.Iterate(); !errors.Is(err, ErrNotRunning) {
				t.Errorf("Iterate after failed Init = %v, want ErrNotRunning", err)
			}
		})
	}
}

func TestInitWithoutPlatform(t *testing.T) {
	a := New(DefaultApplicationSpecification())
	if err := a.Init(); !errors.Is(err, ErrPlatformInit) {
		t.Errorf("Init() = %v, want ErrPlatformInit", err)
	}
}

func TestInitForcedDriver(t *testing.T) {
	h := newHarness(t, WithDriver("metal"))
	h.init(t)
	if h.gpu.Requested.Driver != "metal" {
		t.Errorf("requested driver = %q, want metal", h.gpu.Requested.Driver)
	}
}

func TestOnEvent(t *testing.T) {
	h := newHarness(t, WithQuitKey(gpucontext.KeyEscape))
	h.init(t)
	own := h.app.Window().ID()

	tests := []struct {
		name string
		ev   gpucore.Event
		want AppResult
	}{
		{"quit", gpucore.Event{Type: gpucore.EventQuit}, Success},
		{"close own window", gpucore.Event{Type: gpucore.EventWindowCloseRequested, WindowID: own}, Success},
		{"close other window", gpucore.Event{Type: gpucore.EventWindowCloseRequested, WindowID: own + 1}, Continue},
		{"quit key", gpucore.Event{Type: gpucore.EventKeyDown, Key: gpucontext.KeyEscape}, Success},
		{"quit key repeat", gpucore.Event{Type: gpucore.EventKeyDown, Key: gpucontext.KeyEscape, Repeat: true}, Continue},
		{"quit key release", gpucore.Event{Type: gpucore.EventKeyUp, Key: gpucontext.KeyEscape}, Continue},
		{"other key", gpucore.Event{Type: gpucore.EventKeyDown, Key: gpucontext.KeySpace}, Continue},
		{"resize", gpucore.Event{Type: gpucore.EventWindowResized, WindowID: own}, Continue},
		{"mouse", gpucore.Event{Type: gpucore.EventMouseMotion}, Continue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.app.OnEvent(tt.ev); got != tt.want {
				t.Errorf("OnEvent(%v) = %v, want %v", tt.ev.Type, got, tt.want)
			}
		})
	}
}

func TestOnEventNeverFails(t *testing.T) {
	h := newHarness(t, WithQuitKey(gpucontext.KeyEscape))
	h.init(t)
	own := h.app.Window().ID()
	for typ := gpucore.EventNone; typ <= gpucore.EventMouseWheel; typ++ {
		for _, id := range []gpucore.WindowID{own, own + 1} {
			ev := gpucore.Event{Type: typ, WindowID: id, Key: gpucontext.KeyEscape}
			if got := h.app.OnEvent(ev); got == Failure {
				t.Errorf("OnEvent(%v, window %d) = Failure", typ, id)
			}
		}
	}
}

func TestNoQuitKeyByDefault(t *testing.T) {
	h := newHarness(t)
	l := &testLayer{key: "input"}
	_ = h.app.PushLayer(l)
	h.init(t)
	if got := h.app.OnEvent(gpucore.Event{Type: gpucore.EventKeyDown, Key: gpucontext.KeyEscape}); got != Continue {
		t.Errorf("Escape without a quit key = %v, want Continue", got)
	}
	if want := []gpucore.EventType{gpucore.EventKeyDown}; !reflect.DeepEqual(l.events, want) {
		t.Errorf("layer events = %v, want the unclaimed Escape", l.events)
	}
}

func TestQuitKeyConfigurable(t *testing.T) {
	h := newHarness(t, WithQuitKey(gpucontext.KeyQ), WithQuitKey(gpucontext.KeyUnknown))
	h.init(t)
	if got := h.app.OnEvent(gpucore.Event{Type: gpucore.EventKeyDown, Key: gpucontext.KeyQ}); got != Continue {
		t.Errorf("Q with quit key disabled = %v, want Continue", got)
	}
	if got := h.app.OnEvent(gpucore.Event{Type: gpucore.EventQuit}); got != Success {
		t.Errorf("quit with quit key disabled = %v, want Success", got)
	}
}

func TestOnEventOffersUnclaimedEventsToLayers(t *testing.T) {
	h := newHarness(t)
	l := &testLayer{key: "input"}
	_ = h.app.PushLayer(l)
	h.init(t)

	h.app.OnEvent(gpucore.Event{Type: gpucore.EventKeyDown, Key: gpucontext.KeyA})
	h.app.OnEvent(gpucore.Event{Type: gpucore.EventQuit})

	want := []gpucore.EventType{gpucore.EventKeyDown}
	if !reflect.DeepEqual(l.events, want) {
		t.Errorf("layer events = %v, want %v", l.events, want)
	}
}

func TestIterate(t *testing.T) {
	var trace []string
	h := newHarness(t, WithClearColor(render.Red))
	a := &testLayer{key: "a", trace: &trace}
	b := &testLayer{key: "b", trace: &trace}
	_ = h.app.PushLayer(a)
	_ = h.app.PushLayer(b)
	h.init(t)

	if a.attached != h.app.Context() || b.attached != h.app.Context() {
		t.Fatal("layers not attached on Init")
	}
	trace = nil

	res, err := h.app.Iterate()
	if err != nil || res != Continue {
		t.Fatalf("Iterate() = %v, %v", res, err)
	}
	want := []string{"a.update", "b.update", "a.render", "b.render"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("hooks = %v, want %v", trace, want)
	}
	if a.updates[0] != h.platform.Step {
		t.Errorf("delta = %v, want %v", a.updates[0], h.platform.Step)
	}
	dev := h.gpu.Dev
	if dev.Submitted != 1 {
		t.Errorf("submitted = %d, want 1", dev.Submitted)
	}
	if !reflect.DeepEqual(dev.Cleared, []gputypes.Color{render.Red}) {
		t.Errorf("cleared = %v, want red", dev.Cleared)
	}
	if h.platform.Windows[0].Presents != 1 {
		t.Errorf("presents = %d, want 1", h.platform.Windows[0].Presents)
	}
	if h.app.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", h.app.Frame())
	}
}

func TestIterateClampsDelta(t *testing.T) {
	now := time.Duration(0)
	h := newHarness(t, WithClock(func() time.Duration { return now }))
	l := &testLayer{key: "a"}
	_ = h.app.PushLayer(l)
	h.init(t)

	now += 500 * time.Millisecond
	_, _ = h.app.Iterate()
	_, _ = h.app.Iterate()

	want := []time.Duration{100 * time.Millisecond, time.Millisecond}
	if !reflect.DeepEqual(l.updates, want) {
		t.Errorf("deltas = %v, want %v", l.updates, want)
	}
}

// transitionLayer asks to be replaced while it renders.
type transitionLayer struct {
	testLayer
	ctx  *Context
	next Layer
}

func (l *transitionLayer) OnAttach(ctx *Context) { l.ctx = ctx }

func (l *transitionLayer) OnRender() {
	l.renders++
	l.ctx.Transition(l.key, l.next)
}

func TestIterateAppliesTransitionsAfterHooks(t *testing.T) {
	h := newHarness(t)
	next := &testLayer{key: "menu"}
	first := &transitionLayer{testLayer: testLayer{key: "splash"}, next: next}
	after := &testLayer{key: "hud"}
	_ = h.app.PushLayer(first)
	_ = h.app.PushLayer(after)
	h.init(t)

	if _, err := h.app.Iterate(); err != nil {
		t.Fatal(err)
	}
	if after.renders != 1 {
		t.Error("layer after the transitioning one did not render this frame")
	}
	if got, _ := h.app.Layers().Get("menu"); got != next {
		t.Error("transition not applied after the frame")
	}
	if next.attached != h.app.Context() {
		t.Error("incoming layer not attached")
	}
	if next.renders != 0 {
		t.Error("incoming layer rendered in the frame it was requested")
	}
	if h.app.Layers().Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.app.Layers().Len())
	}
}

func TestIterateSkipsWhenNoTexture(t *testing.T) {
	h := newHarness(t)
	h.init(t)
	h.gpu.Dev.NoTexture = true

	res, err := h.app.Iterate()
	if err != nil || res != Continue {
		t.Fatalf("Iterate() = %v, %v", res, err)
	}
	if h.gpu.Dev.Submitted != 1 {
		t.Errorf("submitted = %d, want 1", h.gpu.Dev.Submitted)
	}
	if len(h.gpu.Dev.Cleared) != 0 {
		t.Error("cleared without a texture")
	}
}

func TestIterateFrameFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *fake.Device)
		want  error
	}{
		{"command buffer", func(d *fake.Device) { d.AcquireErr = fake.ErrFake }, ErrSwapchainAcquire},
		{"swapchain", func(d *fake.Device) { d.TextureErr = fake.ErrFake }, ErrSwapchainAcquire},
		{"submit", func(d *fake.Device) { d.SubmitErr = fake.ErrFake }, ErrSubmit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.init(t)
			tt.setup(h.gpu.Dev)

			res, err := h.app.Iterate()
			if res != Failure {
				t.Errorf("result = %v, want Failure", res)
			}
			if !errors.Is(err, tt.want) || !IsFrameFailure(err) {
				t.Errorf("Iterate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestQuitOrder(t *testing.T) {
	var trace []string
	h := newHarness(t)
	_ = h.app.PushLayer(&testLayer{key: "a", trace: &trace})
	h.init(t)
	trace = nil

	h.app.Quit()

	want := []string{
		"device.WaitIdle",
		"device.ReleaseWindow",
		"device.Destroy",
		"window.Destroy",
		"platform.Terminate",
	}
	if got := h.log.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v\nwant %v", got, want)
	}
	if !reflect.DeepEqual(trace, []string{"a.detach"}) {
		t.Errorf("layer hooks = %v, want detach", trace)
	}
	if h.app.State() != StateQuitting {
		t.Errorf("State() = %v, want Quitting", h.app.State())
	}

	h.log.Reset()
	h.app.Quit()
	if calls := h.log.Calls(); len(calls) != 0 {
		t.Errorf("second Quit made calls: %v", calls)
	}
	if _, err := h.app.Iterate(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Iterate after Quit = %v, want ErrNotRunning", err)
	}
}

func TestContextQuit(t *testing.T) {
	h := newHarness(t)
	h.init(t)
	h.app.Context().Quit()
	res, err := h.app.Iterate()
	if err != nil || res != Success {
		t.Errorf("Iterate after Context.Quit = %v, %v; want Success", res, err)
	}
}

func TestRunQuitEvent(t *testing.T) {
	h := newHarness(t)
	l := &testLayer{key: "a"}
	_ = h.app.PushLayer(l)
	h.platform.Push(gpucore.Event{Type: gpucore.EventMouseMotion})

	frames := 0
	quitter := &quitAfter{frames: 3, platform: h.platform, count: &frames}
	_ = h.app.PushLayer(quitter)

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if len(l.events) != 1 {
		t.Errorf("layer events = %v, want one mouse motion", l.events)
	}
	if h.app.State() != StateQuitting {
		t.Errorf("State() = %v, want Quitting", h.app.State())
	}
	if !h.gpu.Dev.Destroyed {
		t.Error("device not destroyed after Run")
	}
}

// quitAfter pushes a quit event once it has rendered the given number of
// frames.
type quitAfter struct {
	frames   int
	platform *fake.Platform
	count    *int
}

func (q *quitAfter) Key() LayerKey { return "quit-after" }

func (q *quitAfter) OnRender() {
	*q.count++
	if *q.count == q.frames {
		q.platform.Push(gpucore.Event{Type: gpucore.EventQuit})
	}
}

func TestRunFrameFailure(t *testing.T) {
	h := newHarness(t)
	h.gpu.Dev.SubmitErr = fake.ErrFake
	err := h.app.Run(context.Background())
	if !errors.Is(err, ErrSubmit) {
		t.Errorf("Run() = %v, want ErrSubmit", err)
	}
	if !h.gpu.Dev.Destroyed {
		t.Error("device not destroyed after failed frame")
	}
}

func TestRunInitFailure(t *testing.T) {
	h := newHarness(t)
	h.platform.CreateErr = fake.ErrFake
	if err := h.app.Run(context.Background()); !errors.Is(err, ErrWindowCreate) {
		t.Errorf("Run() = %v, want ErrWindowCreate", err)
	}
}

func TestRunContextCancelled(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.app.Run(ctx); err != nil {
		t.Errorf("Run() with cancelled context = %v, want nil", err)
	}
	if h.app.Frame() != 0 {
		t.Errorf("Frame() = %d, want 0", h.app.Frame())
	}
	if !h.gpu.Dev.Destroyed {
		t.Error("device not destroyed")
	}
}

func TestStateAndResultStrings(t *testing.T) {
	if StateRunning.String() != "Running" || State(9).String() != "State(9)" {
		t.Error("State.String")
	}
	if Success.String() != "Success" || AppResult(7).String() != "AppResult(7)" {
		t.Error("AppResult.String")
	}
}

func TestInitSoftwareBackend(t *testing.T) {
	log := &fake.Log{}
	p := fake.NewPlatform(log)
	a := New(DefaultApplicationSpecification(), WithPlatform(p), WithDriver("software"))
	if err := a.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer a.Quit()
	if got := a.Device().Driver(); got != "software" {
		t.Errorf("Driver() = %q, want software", got)
	}
	if res, err := a.Iterate(); err != nil || res != Continue {
		t.Errorf("Iterate() = %v, %v", res, err)
	}
}
